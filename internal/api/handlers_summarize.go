package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/regsect/internal/extract"
	"github.com/go-chi/chi/v5"
)

type summarizeRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type summarizeResponse struct {
	Title       string `json:"title"`
	Model       string `json:"model"`
	InputTokens int    `json:"input_tokens"`
	Content     string `json:"content"`
}

func (s *Server) handleSummarizeSection(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		jsonError(w, "summarization is not configured", http.StatusServiceUnavailable)
		return
	}
	job := s.completedJob(w, r)
	if job == nil {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "section index must be an integer", http.StatusBadRequest)
		return
	}
	section, ok := job.Section(idx)
	if !ok {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}

	s.summarize(w, r, section.Title, section.Text)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		jsonError(w, "summarization is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Text) == "" {
		jsonError(w, "title and text are required", http.StatusBadRequest)
		return
	}

	s.summarize(w, r, req.Title, req.Text)
}

// summarize calls the model and maps its failure to 502.
func (s *Server) summarize(w http.ResponseWriter, r *http.Request, title, body string) {
	tokens := extract.EstimateTokens(body)
	s.log.Debug("summarizing", "title", title, "input_tokens", tokens)

	content, err := s.summarizer.Summarize(r.Context(), title, body)
	if err != nil {
		s.log.Error("summarization failed", "title", title, "error", err)
		jsonError(w, "summarization failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, summarizeResponse{
		Title:       title,
		Model:       s.summarizer.Model(),
		InputTokens: tokens,
		Content:     content,
	})
}
