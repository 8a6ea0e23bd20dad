package ner

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/job-requirements-extractor/internal/config"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/llm"
)

// Backend is a configured recognizer and its cleanup
type Backend struct {
	Name       string
	Recognizer extract.Recognizer
	closer     io.Closer
}

// Close releases backend resources
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// FromConfig builds the recognizer selected by cfg.NERBackend. The "none"
// backend returns a Backend with a nil Recognizer, which the extractor treats
// as entity recognition being unavailable.
func FromConfig(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.NERBackend {
	case "", config.NERBackendNone:
		return &Backend{Name: config.NERBackendNone}, nil

	case config.NERBackendHTTP:
		if cfg.NERURL == "" {
			return nil, fmt.Errorf("ner backend %q requires ner_url", cfg.NERBackend)
		}
		return &Backend{
			Name:       config.NERBackendHTTP,
			Recognizer: NewHTTP(cfg.NERURL, cfg.HFAPIToken, DefaultHTTPTimeout),
		}, nil

	case config.NERBackendGemini:
		client, err := llm.NewGeminiClient(ctx, llm.NewConfig(cfg.ModelName), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini recognizer: %w", err)
		}
		g := NewGemini(client)
		return &Backend{Name: config.NERBackendGemini, Recognizer: g, closer: g}, nil

	default:
		return nil, fmt.Errorf("unknown ner backend %q", cfg.NERBackend)
	}
}
