package api

import (
	"net/http"

	"github.com/dgallion1/regsect/internal/extract"
)

type summaryStatsResponse struct {
	Provider    string                `json:"provider"`
	Model       string                `json:"model"`
	FailureRate float64               `json:"failure_rate"`
	Stats       extract.StatsSnapshot `json:"stats"`
}

func (s *Server) handleSummaryStats(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil || s.summarizer.Stats == nil {
		jsonError(w, "summarizer stats unavailable", http.StatusServiceUnavailable)
		return
	}

	snap := s.summarizer.Stats.Snapshot()
	resp := summaryStatsResponse{
		Provider: s.cfg.SummarizerProvider,
		Model:    s.summarizer.Model(),
		Stats:    snap,
	}
	if snap.Count > 0 {
		resp.FailureRate = float64(snap.Failures) / float64(snap.Count)
	}
	writeJSON(w, http.StatusOK, resp)
}
