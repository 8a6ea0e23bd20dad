package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

// Save writes the collected results in the named format ("json" or "csv")
func (p *Processor) Save(path, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		return p.SaveJSON(path)
	case "csv":
		return p.SaveCSV(path)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// SaveJSON writes the collected results as an indented JSON array
func (p *Processor) SaveJSON(path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, p.Results())
	})
}

// SaveCSV writes one flattened row per result
func (p *Processor) SaveCSV(path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCSV(w, p.Results())
	})
}

// WriteJSON encodes results as an indented JSON array
func WriteJSON(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

var metricColumns = []string{
	"text_length", "word_count", "complexity_score",
	"total_sentences", "requirement_sentences", "requirement_density", "estimated_requirements",
}

// WriteCSV flattens results into rows of identity columns, report metrics,
// summary figures and one <category>_count column per category seen.
func WriteCSV(w io.Writer, results []Result) error {
	var hasFiles, hasRows bool
	var categories []string
	for _, r := range results {
		hasFiles = hasFiles || r.FileInfo != nil
		hasRows = hasRows || r.RowInfo != nil
		if r.Report == nil {
			continue
		}
		for tag := range r.Requirements.CategorizedRequirements {
			if !slices.Contains(categories, string(tag)) {
				categories = append(categories, string(tag))
			}
		}
	}
	slices.Sort(categories)

	var header []string
	if hasFiles {
		header = append(header, "filename", "file_path")
	}
	if hasRows {
		header = append(header, "row_id", "row_number")
	}
	header = append(header, metricColumns...)
	for _, c := range categories {
		header = append(header, c+"_count")
	}
	header = append(header, "error")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(csvRecord(r, hasFiles, hasRows, categories)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(r Result, hasFiles, hasRows bool, categories []string) []string {
	var rec []string
	if hasFiles {
		if r.FileInfo != nil {
			rec = append(rec, r.FileInfo.Filename, r.FileInfo.FilePath)
		} else {
			rec = append(rec, "", "")
		}
	}
	if hasRows {
		if r.RowInfo != nil {
			rec = append(rec, r.RowInfo.RowID, strconv.Itoa(r.RowInfo.RowNumber))
		} else {
			rec = append(rec, "", "")
		}
	}

	if r.Report == nil {
		for range len(metricColumns) + len(categories) {
			rec = append(rec, "")
		}
		return append(rec, r.Error)
	}

	s := r.Requirements.Summary
	rec = append(rec,
		strconv.Itoa(r.TextLength),
		strconv.Itoa(r.WordCount),
		formatFloat(r.ComplexityScore),
		strconv.Itoa(s.TotalSentences),
		strconv.Itoa(s.RequirementSentences),
		formatFloat(s.RequirementDensity),
		strconv.Itoa(s.EstimatedRequirements),
	)
	for _, c := range categories {
		rec = append(rec, strconv.Itoa(len(r.Requirements.CategorizedRequirements[extract.CategoryTag(c)])))
	}
	errMsg := r.Error
	if errMsg == "" {
		errMsg = r.Requirements.Error
	}
	return append(rec, errMsg)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
