package main

import (
	"context"
	"fmt"

	"github.com/jonathan/job-requirements-extractor/internal/analysis"
	"github.com/jonathan/job-requirements-extractor/internal/config"
	"github.com/jonathan/job-requirements-extractor/internal/db"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/ingestion"
	"github.com/jonathan/job-requirements-extractor/internal/logging"
	"github.com/jonathan/job-requirements-extractor/internal/ner"
)

// app holds the components shared by the commands
type app struct {
	cfg       *config.Config
	logger    logging.Logger
	extractor *extract.Extractor
	service   *analysis.Service
	database  *db.DB
	backend   *ner.Backend
}

type appOptions struct {
	// connectDB opens the configured database; a connection failure is fatal
	// only when requireDB is set
	connectDB bool
	requireDB bool
}

// newApp loads configuration and builds the extractor, the optional database
// and the analysis service
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := logging.Setup(cfg.LogLevel, logJSON)

	vocab, err := cfg.Vocabulary()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	backend, err := ner.FromConfig(ctx, cfg)
	if err != nil {
		logger.Warn("entity recognition disabled", "backend", cfg.NERBackend, "error", err)
		backend = &ner.Backend{Name: config.NERBackendNone}
	}
	a.backend = backend
	a.extractor = extract.New(
		extract.WithVocabulary(vocab),
		extract.WithRecognizer(backend.Recognizer),
		extract.WithLogger(logger),
	)

	svcOpts := analysis.Options{
		Cache:         cfg.ShouldCache(),
		MaxTextLength: cfg.MaxTextLength,
		URL:           ingestion.URLOptions{UseBrowser: cfg.UseBrowser},
		Logger:        logger,
	}

	if opts.connectDB || opts.requireDB {
		switch {
		case cfg.DatabaseURL == "" && opts.requireDB:
			a.Close()
			return nil, fmt.Errorf("DATABASE_URL is required")
		case cfg.DatabaseURL != "":
			database, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				if opts.requireDB {
					a.Close()
					return nil, fmt.Errorf("failed to connect to database: %w", err)
				}
				logger.Warn("continuing without database", "error", err)
			} else {
				a.database = database
				svcOpts.Store = database
			}
		}
	}

	a.service = analysis.NewService(a.extractor, svcOpts)
	return a, nil
}

// Close releases the database pool and the recognizer
func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("failed to close recognizer", "error", err)
	}
}
