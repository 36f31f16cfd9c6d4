package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for k := range defaults {
		t.Setenv(strings.ToUpper(k), "")
	}
	for _, k := range []string{"REGSECT_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY", "REGSECT_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.SummarizerProvider != "openai" || cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("unexpected summarizer defaults: %q %q", cfg.SummarizerProvider, cfg.OpenAIModel)
	}
	if cfg.SummaryMaxTokens != 4000 || cfg.SectionPageBudget != 8 || cfg.ExtractConcurrency != 1 {
		t.Errorf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 52428800 || cfg.JobTTL != time.Hour {
		t.Errorf("unexpected limits: %d %s", cfg.MaxUploadBytes, cfg.JobTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SUMMARIZER_PROVIDER", "Anthropic")
	t.Setenv("SECTION_PAGE_BUDGET", "3")
	t.Setenv("WORKER_COUNT", "-2")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.SummarizerProvider != "anthropic" {
		t.Errorf("expected provider lower-cased, got %q", cfg.SummarizerProvider)
	}
	if cfg.SectionPageBudget != 3 {
		t.Errorf("expected page budget 3, got %d", cfg.SectionPageBudget)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected non-positive worker count to fall back to 4, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("expected 15m ttl, got %s", cfg.JobTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected fallback disabled")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "regsect.yaml")
	body := "port: \"7001\"\nsection_page_budget: 12\nopenai_model: gpt-4o-mini\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7001" || cfg.SectionPageBudget != 12 {
		t.Errorf("expected file values, got port=%q budget=%d", cfg.Port, cfg.SectionPageBudget)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("expected env to override file, got %q", cfg.OpenAIModel)
	}
}

func TestLoad_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing server key", Config{SummarizerProvider: "openai", OpenAIAPIKey: "k"}, true},
		{"openai ok", Config{RegsectAPIKey: "s", SummarizerProvider: "openai", OpenAIAPIKey: "k"}, false},
		{"openai missing key", Config{RegsectAPIKey: "s", SummarizerProvider: "openai", AnthropicAPIKey: "k"}, true},
		{"anthropic ok", Config{RegsectAPIKey: "s", SummarizerProvider: "anthropic", AnthropicAPIKey: "k"}, false},
		{"unknown provider", Config{RegsectAPIKey: "s", SummarizerProvider: "cohere"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarizerSelection(t *testing.T) {
	cfg := Config{
		SummarizerProvider: "anthropic",
		OpenAIAPIKey:       "o", OpenAIModel: "gpt", OpenAIBaseURL: "http://proxy/v1/",
		AnthropicAPIKey: "a", AnthropicModel: "claude",
	}
	if cfg.SummarizerAPIKey() != "a" || cfg.SummarizerModel() != "claude" || cfg.SummarizerBaseURL() != "" {
		t.Errorf("expected anthropic settings, got %q %q %q", cfg.SummarizerAPIKey(), cfg.SummarizerModel(), cfg.SummarizerBaseURL())
	}
	cfg.SummarizerProvider = "openai"
	if cfg.SummarizerAPIKey() != "o" || cfg.SummarizerModel() != "gpt" || cfg.SummarizerBaseURL() != "http://proxy/v1/" {
		t.Errorf("expected openai settings, got %q %q %q", cfg.SummarizerAPIKey(), cfg.SummarizerModel(), cfg.SummarizerBaseURL())
	}
}
