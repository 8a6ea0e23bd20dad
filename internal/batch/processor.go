// Package batch runs the extractor over directories of postings and CSV exports.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/ingestion"
	"github.com/jonathan/job-requirements-extractor/internal/logging"
)

// DefaultConcurrency is the worker count used when none is configured
const DefaultConcurrency = 4

// DefaultExtensions are the file types ProcessDirectory picks up by default
var DefaultExtensions = []string{".txt", ".md"}

// Analyzer produces a report for one posting. *extract.Extractor satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, text string) *extract.Report
}

// FileInfo identifies the file a result came from
type FileInfo struct {
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
	FileSize int    `json:"file_size"`
}

// RowInfo identifies the CSV row a result came from
type RowInfo struct {
	RowNumber  int               `json:"row_number"`
	RowID      string            `json:"row_id"`
	AllColumns map[string]string `json:"all_columns"`
}

// Result is the outcome for one item. Report is nil when Error is set.
type Result struct {
	*extract.Report
	FileInfo *FileInfo `json:"file_info,omitempty"`
	RowInfo  *RowInfo  `json:"row_info,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Failed reports whether the item could not be analyzed
func (r Result) Failed() bool {
	return r.Error != "" || r.Report == nil
}

// ProgressFunc is called after each item completes
type ProgressFunc func(done, total int, name string)

// Option configures a Processor
type Option func(*Processor)

// WithConcurrency caps the number of items analyzed at once
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithMaxTextLength truncates each input to n characters before analysis
func WithMaxTextLength(n int) Option {
	return func(p *Processor) { p.maxTextLength = n }
}

// WithLogger sets the processor logger
func WithLogger(l logging.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.progress = fn }
}

// Processor analyzes many postings with bounded concurrency and keeps every
// result for export and summary.
type Processor struct {
	analyzer      Analyzer
	concurrency   int
	maxTextLength int
	logger        logging.Logger
	progress      ProgressFunc

	mu      sync.Mutex
	results []Result
}

// NewProcessor creates a Processor around analyzer
func NewProcessor(analyzer Analyzer, opts ...Option) *Processor {
	p := &Processor{
		analyzer:    analyzer,
		concurrency: DefaultConcurrency,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Results returns a copy of every result collected so far
func (p *Processor) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.results)
}

// Reset discards collected results
func (p *Processor) Reset() {
	p.mu.Lock()
	p.results = nil
	p.mu.Unlock()
}

// ProcessFile analyzes a single file. Read failures are returned as a failed Result.
func (p *Processor) ProcessFile(ctx context.Context, path string) Result {
	info := &FileInfo{Filename: filepath.Base(path), FilePath: path}

	doc, err := ingestion.ReadDocument(path)
	if err != nil {
		p.logger.Warn("failed to read file", "path", path, "error", err)
		return Result{FileInfo: info, Error: err.Error()}
	}
	info.FileSize = doc.Metadata.Size

	return Result{Report: p.analyze(ctx, doc.Text), FileInfo: info}
}

// ProcessDirectory analyzes every file in dir whose extension is in exts
// (DefaultExtensions when empty). Files are processed in name order and the
// results keep that order.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, exts []string) ([]Result, error) {
	files, err := listFiles(dir, exts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Warn("no matching files found", "dir", dir, "extensions", extensionsOrDefault(exts))
		return []Result{}, nil
	}
	p.logger.Info("processing directory", "dir", dir, "files", len(files))

	results, err := p.run(ctx, len(files), func(ctx context.Context, i int) (Result, string) {
		return p.ProcessFile(ctx, files[i]), filepath.Base(files[i])
	})
	if err != nil {
		return nil, err
	}
	p.append(results)
	return results, nil
}

// ProcessCSV analyzes the textColumn of every row in a CSV file with a header.
// idColumn is optional; rows without one are named Row_<n>.
func (p *Processor) ProcessCSV(ctx context.Context, path, textColumn, idColumn string) ([]Result, error) {
	if textColumn == "" {
		textColumn = "description"
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	header, rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	if header == nil {
		return []Result{}, nil
	}
	if !slices.Contains(header, textColumn) {
		return nil, fmt.Errorf("column %q not found in %s", textColumn, path)
	}
	if len(rows) == 0 {
		return []Result{}, nil
	}
	p.logger.Info("processing csv", "path", path, "rows", len(rows))

	results, err := p.run(ctx, len(rows), func(ctx context.Context, i int) (Result, string) {
		row := rows[i]
		info := &RowInfo{RowNumber: i, RowID: fmt.Sprintf("Row_%d", i), AllColumns: row}
		if idColumn != "" && row[idColumn] != "" {
			info.RowID = row[idColumn]
		}
		return Result{Report: p.analyze(ctx, row[textColumn]), RowInfo: info}, info.RowID
	})
	if err != nil {
		return nil, err
	}
	p.append(results)
	return results, nil
}

func (p *Processor) analyze(ctx context.Context, text string) *extract.Report {
	if truncated, cut := ingestion.Truncate(text, p.maxTextLength); cut {
		p.logger.Debug("input truncated", "max", p.maxTextLength)
		text = truncated
	}
	return p.analyzer.Analyze(ctx, text)
}

type itemFunc func(ctx context.Context, i int) (Result, string)

// run fans items out over an errgroup limited to the configured concurrency.
// Item failures live in the Result; only cancellation aborts the batch.
func (p *Processor) run(ctx context.Context, n int, fn itemFunc) ([]Result, error) {
	results := make([]Result, n)
	var (
		g        errgroup.Group
		progMu   sync.Mutex
		finished int
	)
	g.SetLimit(p.concurrency)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, name := fn(ctx, i)
			results[i] = res
			if res.Failed() {
				p.logger.Warn("item failed", "item", name, "error", res.Error)
			} else {
				p.logger.Debug("item analyzed", "item", name, "requirements", res.RequirementCount())
			}
			if p.progress != nil {
				progMu.Lock()
				finished++
				p.progress(finished, n, name)
				progMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	return results, nil
}

func (p *Processor) append(results []Result) {
	p.mu.Lock()
	p.results = append(p.results, results...)
	p.mu.Unlock()
}

func listFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	want := extensionsOrDefault(exts)

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(want, ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func extensionsOrDefault(exts []string) []string {
	if len(exts) == 0 {
		return DefaultExtensions
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// readCSV returns the header and one map per data row keyed by header name.
// An empty file yields a nil header.
func readCSV(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
