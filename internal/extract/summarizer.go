package extract

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Summarizer refines one section's text with a language model. Failures
// are returned as the provider reported them; nothing is retried.
type Summarizer interface {
	Summarize(ctx context.Context, title, body string) (string, error)
	Model() string
}

// Settings selects and configures a summarization provider.
type Settings struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// New builds the summarizer named by s.Provider.
func New(s Settings) (Summarizer, error) {
	switch strings.ToLower(s.Provider) {
	case "", "openai":
		return NewOpenAIClient(s.APIKey, s.Model, s.BaseURL, s.MaxTokens), nil
	case "anthropic":
		return NewClaudeClient(s.APIKey, s.Model, s.BaseURL, s.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", s.Provider)
	}
}

// Recorder wraps a Summarizer and records the latency and outcome of every
// call, failed ones included.
type Recorder struct {
	Summarizer
	Stats *SummaryStats
}

// NewRecorder wraps s with a stats window of the given length.
func NewRecorder(s Summarizer, window time.Duration) *Recorder {
	return &Recorder{Summarizer: s, Stats: NewSummaryStats(window)}
}

func (r *Recorder) Summarize(ctx context.Context, title, body string) (string, error) {
	start := time.Now()
	out, err := r.Summarizer.Summarize(ctx, title, body)
	r.Stats.Record(time.Since(start), err != nil)
	return out, err
}
