package extract

import (
	"slices"
	"sync"
	"time"
)

// StatsSnapshot aggregates the summarizer calls inside the stats window.
type StatsSnapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

type call struct {
	at     time.Time
	ms     int64
	failed bool
}

// SummaryStats keeps summarizer call latencies for a rolling window.
type SummaryStats struct {
	mu     sync.Mutex
	calls  []call
	window time.Duration
	now    func() time.Time
}

func NewSummaryStats(window time.Duration) *SummaryStats {
	if window <= 0 {
		window = time.Hour
	}
	return &SummaryStats{window: window, now: time.Now}
}

// Record adds one call. Negative durations count as zero.
func (s *SummaryStats) Record(d time.Duration, failed bool) {
	ms := max(d.Milliseconds(), 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.expire(now)
	s.calls = append(s.calls, call{at: now, ms: ms, failed: failed})
}

func (s *SummaryStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	s.expire(s.now())
	calls := slices.Clone(s.calls)
	s.mu.Unlock()

	if len(calls) == 0 {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{Count: len(calls)}
	latencies := make([]int64, len(calls))
	var total int64
	for i, c := range calls {
		latencies[i] = c.ms
		total += c.ms
		if c.failed {
			snap.Failures++
		}
	}
	slices.Sort(latencies)

	snap.MinMs = latencies[0]
	snap.MaxMs = latencies[len(latencies)-1]
	snap.AvgMs = float64(total) / float64(len(latencies))
	snap.P50Ms = quantile(latencies, 0.50)
	snap.P95Ms = quantile(latencies, 0.95)
	snap.P99Ms = quantile(latencies, 0.99)
	return snap
}

// expire drops calls older than the window. Calls are appended in time
// order, so the expired ones form a prefix.
func (s *SummaryStats) expire(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.calls) && s.calls[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.calls = slices.Delete(s.calls, 0, i)
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []int64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
