package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/regsect/internal/config"
	"github.com/dgallion1/regsect/internal/extract"
	"github.com/dgallion1/regsect/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for regsect.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	summarizer   *extract.Recorder
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. A nil summarizer
// disables the summarization endpoints.
func NewServer(orch *pipeline.Orchestrator, summarizer *extract.Recorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		summarizer:   summarizer,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.RegsectAPIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents/{jobID}/status", s.handleStatus)
		r.Get("/api/documents/{jobID}/sections", s.handleSections)
		r.Post("/api/documents/{jobID}/sections/{index}/summarize", s.handleSummarizeSection)
		r.Delete("/api/documents/{jobID}", s.handleDeleteDocument)
		r.Get("/api/jobs", s.handleListJobs)

		r.Post("/api/summarize", s.handleSummarize)
		r.Get("/api/stats/llm", s.handleSummaryStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
