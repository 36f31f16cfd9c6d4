package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/regsect/internal/api"
	"github.com/dgallion1/regsect/internal/config"
	"github.com/dgallion1/regsect/internal/extract"
	"github.com/dgallion1/regsect/internal/pipeline"
)

func main() {
	cfgFile := flag.String("config", "", "YAML config file (default: $REGSECT_CONFIG)")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the summarizer.
	s, err := extract.New(extract.Settings{
		Provider:  cfg.SummarizerProvider,
		APIKey:    cfg.SummarizerAPIKey(),
		Model:     cfg.SummarizerModel(),
		BaseURL:   cfg.SummarizerBaseURL(),
		MaxTokens: cfg.SummaryMaxTokens,
	})
	if err != nil {
		log.Error("invalid summarizer", "error", err)
		os.Exit(1)
	}
	summarizer := extract.NewRecorder(s, time.Hour)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, summarizer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()

		if c, ok := s.(*extract.ClaudeClient); ok {
			c.Close()
		}
	}()

	log.Info("starting regsect",
		"port", cfg.Port,
		"provider", cfg.SummarizerProvider,
		"model", summarizer.Model(),
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
