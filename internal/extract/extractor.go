// Package extract turns free-form job posting text into a structured
// requirements report using keyword and layout heuristics.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-requirements-extractor/internal/logging"
)

// Extractor runs the full analysis pipeline. It holds no per-call state and is
// safe for concurrent use.
type Extractor struct {
	vocabulary  Vocabulary
	pattern     *PatternDetector
	list        *ListDetector
	entities    *EntityAdapter
	categorizer *Categorizer
	complexity  *ComplexityScorer
	summarizer  *Summarizer
	logger      logging.Logger
}

// Option configures an Extractor
type Option func(*options)

type options struct {
	vocabulary Vocabulary
	recognizer Recognizer
	logger     logging.Logger
}

// WithVocabulary replaces the default word lists
func WithVocabulary(v Vocabulary) Option {
	return func(o *options) { o.vocabulary = v.Clone() }
}

// WithRecognizer enables entity extraction through r
func WithRecognizer(r Recognizer) Option {
	return func(o *options) { o.recognizer = r }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds an Extractor
func New(opts ...Option) *Extractor {
	o := options{vocabulary: DefaultVocabulary()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}

	v := o.vocabulary
	return &Extractor{
		vocabulary:  v,
		pattern:     NewPatternDetector(v),
		list:        NewListDetector(v),
		entities:    NewEntityAdapter(o.recognizer, o.logger),
		categorizer: NewCategorizer(v),
		complexity:  NewComplexityScorer(v),
		summarizer:  NewSummarizer(v),
		logger:      o.logger,
	}
}

// Vocabulary returns a copy of the bound word lists
func (e *Extractor) Vocabulary() Vocabulary {
	return e.vocabulary.Clone()
}

// Extract builds the requirements block for raw
func (e *Extractor) Extract(ctx context.Context, raw string) Requirements {
	if strings.TrimSpace(raw) == "" {
		return Requirements{Error: ErrNoDescription}
	}

	normalized := Normalize(raw)

	var (
		textReqs []string
		listReqs []string
		entities []Entity
		g        errgroup.Group
	)
	g.Go(func() error {
		textReqs = e.pattern.Detect(normalized)
		return nil
	})
	g.Go(func() error {
		// Line layout (indentation, "+" in "5+ years") only survives in the raw text
		listReqs = e.list.Detect(raw)
		return nil
	})
	g.Go(func() error {
		entities = e.entities.Extract(ctx, normalized)
		return nil
	})
	_ = g.Wait()

	candidates := make([]string, 0, len(textReqs)+len(listReqs))
	candidates = append(candidates, textReqs...)
	candidates = append(candidates, listReqs...)

	summary := e.summarizer.Summarize(raw, textReqs, listReqs)

	e.logger.Debug("extracted requirements",
		"text", len(textReqs), "list", len(listReqs), "entities", len(entities))

	return Requirements{
		TextRequirements:        textReqs,
		IndividualRequirements:  listReqs,
		EntityRequirements:      entities,
		CategorizedRequirements: e.categorizer.Categorize(candidates),
		Summary:                 summary,
	}
}

// Analyze produces the complete report for raw
func (e *Extractor) Analyze(ctx context.Context, raw string) *Report {
	reqs := e.Extract(ctx, raw)
	report := &Report{
		Requirements:    reqs,
		TextLength:      utf8.RuneCountInString(raw),
		WordCount:       len(strings.Fields(raw)),
		ComplexityScore: e.complexity.Score(raw),
		Recommendations: []string{},
	}
	if !reqs.Failed() {
		report.Recommendations = e.summarizer.Recommend(reqs.CategorizedRequirements, reqs.Summary)
	}
	return report
}
