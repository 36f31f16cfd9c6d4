package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/regsect/internal/parser"
	"github.com/dgallion1/regsect/internal/structure"
)

// WorkerConfig holds the per-document extraction settings.
type WorkerConfig struct {
	Parser      parser.Options
	Ranges      structure.RangeTable
	PageBudget  int
	Concurrency int
}

// Worker processes a single document job.
type Worker struct {
	log *slog.Logger
	cfg WorkerConfig
}

func NewWorker(log *slog.Logger, cfg WorkerConfig) *Worker {
	return &Worker{log: log, cfg: cfg}
}

// Process parses the uploaded bytes and extracts sections. A failure in
// either phase fails the job with no sections.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(fmt.Sprintf("cancelled: %s", err))
		job.SetStatus(StatusFailed, "queued")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, err := parser.Parse(bytes.NewReader(job.FileData()), job.Filename, w.cfg.Parser)
	job.ReleaseFileData()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetParsed(doc.Title, doc.NumPages())
	log.Info("parsed document", "pages", doc.NumPages(), "outline_entries", len(doc.Outline))

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	budget := job.PageBudget
	if budget <= 0 {
		budget = w.cfg.PageBudget
	}
	ex := structure.NewExtractor(structure.Options{
		PageBudget:  budget,
		Ranges:      w.cfg.Ranges,
		Concurrency: w.cfg.Concurrency,
	})
	res, err := ex.Extract(doc)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	job.SetResult(string(res.Dialect), res.Sections)
	log.Info("extraction complete", "dialect", res.Dialect, "sections", len(res.Sections))
	job.SetStatus(StatusCompleted, "done")
}
