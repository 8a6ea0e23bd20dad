// Package analysis runs the extractor for the CLI and HTTP server, with an
// optional store that caches reports by content hash.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-requirements-extractor/internal/db"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/ingestion"
	"github.com/jonathan/job-requirements-extractor/internal/logging"
)

// Store persists reports. *db.DB satisfies it.
type Store interface {
	GetAnalysisByHash(ctx context.Context, contentHash string) (*db.Analysis, error)
	SaveAnalysis(ctx context.Context, contentHash, source string, report *extract.Report) (*db.Analysis, error)
}

// Options configures a Service
type Options struct {
	// Store is optional; without it nothing is cached or persisted
	Store Store
	// Cache enables lookups by content hash before analyzing
	Cache bool
	// MaxTextLength truncates input before analysis; 0 disables the cap
	MaxTextLength int
	// URL carries fetch settings for AnalyzeURL
	URL    ingestion.URLOptions
	Logger logging.Logger
}

// Result is one analysis with its storage metadata
type Result struct {
	ID          uuid.UUID       `json:"id,omitempty"`
	Source      string          `json:"source,omitempty"`
	ContentHash string          `json:"content_hash"`
	Cached      bool            `json:"cached"`
	Truncated   bool            `json:"truncated,omitempty"`
	Report      *extract.Report `json:"report"`
}

// Service analyzes postings and owns the report cache
type Service struct {
	extractor *extract.Extractor
	opts      Options
	logger    logging.Logger
	ingestURL func(ctx context.Context, url string, opts ingestion.URLOptions) (*ingestion.Document, error)
}

// NewService creates a Service around extractor
func NewService(extractor *extract.Extractor, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.URL.Logger == nil {
		opts.URL.Logger = logger
	}
	return &Service{
		extractor: extractor,
		opts:      opts,
		logger:    logger,
		ingestURL: ingestion.IngestFromURL,
	}
}

// Extractor returns the underlying extractor
func (s *Service) Extractor() *extract.Extractor {
	return s.extractor
}

// Analyze produces a report for text. Store failures are logged and do not
// fail the analysis; blank input is never cached.
func (s *Service) Analyze(ctx context.Context, text, source string) (*Result, error) {
	text, truncated := ingestion.Truncate(text, s.opts.MaxTextLength)
	if truncated {
		s.logger.Warn("input truncated", "source", source, "max", s.opts.MaxTextLength)
	}

	res := &Result{
		Source:      source,
		ContentHash: ingestion.ContentHash(text),
		Truncated:   truncated,
	}

	if s.opts.Store != nil && s.opts.Cache {
		if cached := s.lookup(ctx, res.ContentHash); cached != nil {
			res.ID = cached.ID
			res.Report = cached.report
			res.Cached = true
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Report = s.extractor.Analyze(ctx, text)

	if s.opts.Store != nil && !res.Report.Requirements.Failed() {
		saved, err := s.opts.Store.SaveAnalysis(ctx, res.ContentHash, source, res.Report)
		if err != nil {
			s.logger.Warn("failed to save analysis", "hash", res.ContentHash, "error", err)
		} else {
			res.ID = saved.ID
		}
	}
	return res, nil
}

// AnalyzeURL fetches a posting and analyzes its main text
func (s *Service) AnalyzeURL(ctx context.Context, url string, useBrowser bool) (*Result, error) {
	opts := s.opts.URL
	opts.UseBrowser = opts.UseBrowser || useBrowser
	doc, err := s.ingestURL(ctx, url, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", url, err)
	}
	return s.Analyze(ctx, doc.Text, url)
}

// AnalyzeFile reads a document and analyzes its text
func (s *Service) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	doc, err := ingestion.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, doc.Text, path)
}

type cachedReport struct {
	ID     uuid.UUID
	report *extract.Report
}

func (s *Service) lookup(ctx context.Context, hash string) *cachedReport {
	stored, err := s.opts.Store.GetAnalysisByHash(ctx, hash)
	if err != nil {
		s.logger.Warn("cache lookup failed", "hash", hash, "error", err)
		return nil
	}
	if stored == nil {
		return nil
	}
	report, err := stored.DecodeReport()
	if err != nil {
		s.logger.Warn("discarding unreadable cached report", "id", stored.ID, "error", err)
		return nil
	}
	s.logger.Debug("cache hit", "id", stored.ID, "hash", hash)
	return &cachedReport{ID: stored.ID, report: report}
}
