package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// Auth
	RegsectAPIKey string

	// Summarization
	SummarizerProvider string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	AnthropicAPIKey    string
	AnthropicModel     string
	SummaryMaxTokens   int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Extraction
	SectionPageBudget  int
	ExtractConcurrency int

	// PDF
	PDFFallbackPdftotext bool
}

var defaults = map[string]any{
	"port":                   "8090",
	"summarizer_provider":    "openai",
	"openai_model":           "gpt-3.5-turbo",
	"anthropic_model":        "claude-3-5-haiku-latest",
	"summary_max_tokens":     4000,
	"worker_count":           4,
	"max_queue_size":         100,
	"max_upload_bytes":       52428800, // 50MB
	"job_ttl":                time.Hour,
	"section_page_budget":    8,
	"extract_concurrency":    1,
	"pdf_fallback_pdftotext": true,
}

// Load reads defaults, then the optional YAML file, then environment
// variables named after the upper-cased keys. An empty cfgFile falls back
// to REGSECT_CONFIG; no file at all is fine.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for _, k := range []string{"regsect_api_key", "openai_api_key", "openai_base_url", "anthropic_api_key", "regsect_config"} {
		v.SetDefault(k, "")
	}
	v.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = v.GetString("regsect_config")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := Config{
		Port: v.GetString("port"),

		RegsectAPIKey: v.GetString("regsect_api_key"),

		SummarizerProvider: strings.ToLower(v.GetString("summarizer_provider")),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIModel:        v.GetString("openai_model"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		AnthropicAPIKey:    v.GetString("anthropic_api_key"),
		AnthropicModel:     v.GetString("anthropic_model"),
		SummaryMaxTokens:   v.GetInt("summary_max_tokens"),

		WorkerCount:  v.GetInt("worker_count"),
		MaxQueueSize: v.GetInt("max_queue_size"),

		MaxUploadBytes: v.GetInt64("max_upload_bytes"),

		JobTTL: v.GetDuration("job_ttl"),

		SectionPageBudget:  v.GetInt("section_page_budget"),
		ExtractConcurrency: v.GetInt("extract_concurrency"),

		PDFFallbackPdftotext: v.GetBool("pdf_fallback_pdftotext"),
	}

	if cfg.Port == "" {
		cfg.Port = "8090"
	}
	if cfg.SummaryMaxTokens <= 0 {
		cfg.SummaryMaxTokens = 4000
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.SectionPageBudget <= 0 {
		cfg.SectionPageBudget = 8
	}
	if cfg.ExtractConcurrency <= 0 {
		cfg.ExtractConcurrency = 1
	}

	return cfg, nil
}

// SummarizerAPIKey returns the key of the selected provider.
func (c Config) SummarizerAPIKey() string {
	if c.SummarizerProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// SummarizerModel returns the model of the selected provider.
func (c Config) SummarizerModel() string {
	if c.SummarizerProvider == "anthropic" {
		return c.AnthropicModel
	}
	return c.OpenAIModel
}

// SummarizerBaseURL returns the endpoint override of the selected provider.
// Only the OpenAI client can be pointed elsewhere.
func (c Config) SummarizerBaseURL() string {
	if c.SummarizerProvider == "anthropic" {
		return ""
	}
	return c.OpenAIBaseURL
}

// ValidateSummarizer checks the settings needed to call a model.
func (c Config) ValidateSummarizer() error {
	switch c.SummarizerProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	default:
		return fmt.Errorf("SUMMARIZER_PROVIDER must be openai or anthropic, got %q", c.SummarizerProvider)
	}
	return nil
}

// Validate checks everything the HTTP service needs.
func (c Config) Validate() error {
	if c.RegsectAPIKey == "" {
		return fmt.Errorf("REGSECT_API_KEY is required")
	}
	return c.ValidateSummarizer()
}
