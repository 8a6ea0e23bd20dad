// Package observability renders analysis reports for the terminal.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/job-requirements-extractor/internal/batch"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

const (
	// boxWidth is the width of the title banner
	boxWidth = 60
	// maxPatternRequirements is how many pattern requirements are listed
	maxPatternRequirements = 10
	// maxItemsToShow is how many items are listed per category
	maxItemsToShow = 5
	// maxItemLength truncates category items
	maxItemLength = 80
)

// Printer writes human-readable reports
type Printer struct {
	out     io.Writer
	order   []extract.CategoryTag
	title   lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a Printer that writes to out. Styling degrades to plain
// text when out is not a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:   out,
		order: extract.DefaultVocabulary().Tags(),
		title: r.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			Width(boxWidth - 2).
			Align(lipgloss.Center),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   r.NewStyle().Faint(true),
	}
}

// WithCategoryOrder sets the order categories are printed in. Categories not
// listed follow in alphabetical order.
func (p *Printer) WithCategoryOrder(tags []extract.CategoryTag) *Printer {
	p.order = slices.Clone(tags)
	return p
}

// PrintReport writes the report sections; verbose appends the indented JSON.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *extract.Report, verbose bool) error {
	if report == nil {
		return nil
	}

	fmt.Fprintln(p.out, p.title.Render("JOB REQUIREMENTS ANALYSIS RESULTS"))

	p.heading("BASIC METRICS")
	fmt.Fprintf(p.out, "   Text Length: %s characters\n", formatInt(report.TextLength))
	fmt.Fprintf(p.out, "   Word Count: %s words\n", formatInt(report.WordCount))
	fmt.Fprintf(p.out, "   Complexity Score: %.1f/10\n", report.ComplexityScore)

	reqs := report.Requirements
	if reqs.Failed() {
		p.heading("ERROR")
		fmt.Fprintf(p.out, "   %s\n", reqs.Error)
	} else {
		p.printSummary(reqs.Summary)
		p.printPatternRequirements(reqs.TextRequirements)
		p.printCategories(reqs.CategorizedRequirements)
	}

	if len(report.Recommendations) > 0 {
		p.heading("RECOMMENDATIONS")
		for i, rec := range report.Recommendations {
			fmt.Fprintf(p.out, "   %d. %s\n", i+1, rec)
		}
	}

	if verbose {
		p.heading("DETAILED ANALYSIS")
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(p.out, string(data))
	}
	return nil
}

//nolint:errcheck
func (p *Printer) printSummary(s extract.Summary) {
	p.heading("REQUIREMENTS SUMMARY")
	fmt.Fprintf(p.out, "   Total Sentences: %d\n", s.TotalSentences)
	fmt.Fprintf(p.out, "   Requirement Sentences: %d\n", s.RequirementSentences)
	fmt.Fprintf(p.out, "   Estimated Requirements: %d\n", s.EstimatedRequirements)
	fmt.Fprintf(p.out, "   Requirement Density: %.1f%%\n", s.RequirementDensity*100)
}

//nolint:errcheck
func (p *Printer) printPatternRequirements(items []string) {
	if len(items) == 0 {
		return
	}
	p.heading("PATTERN-BASED REQUIREMENTS")
	for i, req := range items[:min(len(items), maxPatternRequirements)] {
		fmt.Fprintf(p.out, "   %2d. %s\n", i+1, req)
	}
	if len(items) > maxPatternRequirements {
		fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf("   ... and %d more", len(items)-maxPatternRequirements)))
	}
}

//nolint:errcheck
func (p *Printer) printCategories(cats map[extract.CategoryTag][]string) {
	tags := p.orderedTags(cats)
	if len(tags) == 0 {
		return
	}
	p.heading("CATEGORIZED REQUIREMENTS")
	for _, tag := range tags {
		items := cats[tag]
		fmt.Fprintf(p.out, "\n   %s:\n", strings.ToUpper(strings.ReplaceAll(string(tag), "_", " ")))
		for _, item := range items[:min(len(items), maxItemsToShow)] {
			fmt.Fprintf(p.out, "      • %s\n", truncate(item, maxItemLength))
		}
		if len(items) > maxItemsToShow {
			fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf("      ... and %d more", len(items)-maxItemsToShow)))
		}
	}
}

// orderedTags returns the non-empty categories, known tags first
func (p *Printer) orderedTags(cats map[extract.CategoryTag][]string) []extract.CategoryTag {
	var tags []extract.CategoryTag
	for _, tag := range p.order {
		if len(cats[tag]) > 0 {
			tags = append(tags, tag)
		}
	}
	var rest []extract.CategoryTag
	for tag, items := range cats {
		if len(items) > 0 && !slices.Contains(p.order, tag) {
			rest = append(rest, tag)
		}
	}
	slices.Sort(rest)
	return append(tags, rest...)
}

// PrintBatchSummary writes the aggregate view of a batch run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchSummary(s *batch.Summary) {
	if s == nil {
		return
	}

	fmt.Fprintln(p.out, p.title.Render("BATCH PROCESSING SUMMARY"))

	p.heading("RESULTS")
	fmt.Fprintf(p.out, "   Items Processed: %d\n", s.TotalFilesProcessed)
	fmt.Fprintf(p.out, "   Successful: %d\n", s.SuccessfulAnalyses)
	fmt.Fprintf(p.out, "   Failed: %d\n", s.FailedAnalyses)
	fmt.Fprintf(p.out, "   Success Rate: %.1f%%\n", s.SuccessRate*100)

	if s.SuccessfulAnalyses == 0 {
		return
	}

	p.heading("AGGREGATE METRICS")
	fmt.Fprintf(p.out, "   Total Words: %s\n", formatInt(s.AggregateMetrics.TotalWordCount))
	fmt.Fprintf(p.out, "   Average Complexity: %.2f/10\n", s.AggregateMetrics.AverageComplexityScore)
	fmt.Fprintf(p.out, "   Requirements Found: %d\n", s.RequirementsSummary.TotalRequirementsFound)
	fmt.Fprintf(p.out, "   Requirements per Job: %.2f\n", s.RequirementsSummary.AverageRequirementsPerJob)

	counts := make(map[extract.CategoryTag][]string, len(s.CategoryDistribution))
	for tag, n := range s.CategoryDistribution {
		if n > 0 {
			counts[tag] = []string{strconv.Itoa(n)}
		}
	}
	tags := p.orderedTags(counts)
	if len(tags) == 0 {
		return
	}
	p.heading("CATEGORY DISTRIBUTION")
	for _, tag := range tags {
		fmt.Fprintf(p.out, "   %-18s %d\n", tag+":", s.CategoryDistribution[tag])
	}
}

//nolint:errcheck
func (p *Printer) heading(title string) {
	fmt.Fprintf(p.out, "\n%s\n", p.section.Render(title+":"))
}

// truncate shortens s to max runes plus an ellipsis
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// formatInt renders n with thousands separators
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
