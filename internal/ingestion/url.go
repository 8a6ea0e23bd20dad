package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/job-requirements-extractor/internal/fetch"
	"github.com/jonathan/job-requirements-extractor/internal/logging"
)

// URLOptions configures IngestFromURL
type URLOptions struct {
	// UseBrowser renders the page in headless Chrome when the plain fetch
	// yields too little text
	UseBrowser bool
	Fetch      *fetch.Options
	Logger     logging.Logger
	// render is swapped in tests
	render func(ctx context.Context, url string) (string, error)
}

// IngestFromURL fetches a job posting page and returns its cleaned text using
// platform-specific selectors
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (*Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	if err := fetch.ValidateURL(urlStr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching posting", "url", urlStr, "platform", platform)

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("content too short, rendering with browser", "chars", len(text), "min", fetch.MinContentLength)
		render := opts.render
		if render == nil {
			render = func(ctx context.Context, url string) (string, error) {
				return fetch.Render(ctx, url, fetch.DefaultBrowserTimeout, logger)
			}
		}
		// Browser failures fall back to the plain fetch
		if html, err := render(ctx, urlStr); err != nil {
			logger.Warn("browser rendering failed, using fetched content", "err", err)
		} else if rendered, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); err != nil {
			logger.Warn("browser content extraction failed", "err", err)
		} else {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, errors.Join(ErrContentExtractionFailed, ErrEmptyDocument)
	}

	meta := NewMetadata(cleaned, urlStr)
	meta.Format = "html"
	meta.Platform = string(platform)
	logger.Debug("ingested posting", "url", urlStr, "chars", meta.Size)

	return &Document{Text: cleaned, Metadata: meta}, nil
}
