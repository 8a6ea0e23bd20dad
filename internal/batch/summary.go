package batch

import (
	"errors"
	"math"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

// ErrNoResults is returned by SummaryReport before anything was processed
var ErrNoResults = errors.New("No results to summarize")

// AggregateMetrics totals text measurements across successful analyses
type AggregateMetrics struct {
	TotalTextLength        int     `json:"total_text_length"`
	TotalWordCount         int     `json:"total_word_count"`
	AverageComplexityScore float64 `json:"average_complexity_score"`
}

// RequirementsSummary totals pattern plus list requirements
type RequirementsSummary struct {
	TotalRequirementsFound    int     `json:"total_requirements_found"`
	AverageRequirementsPerJob float64 `json:"average_requirements_per_job"`
}

// Summary describes a whole batch
type Summary struct {
	TotalFilesProcessed  int                         `json:"total_files_processed"`
	SuccessfulAnalyses   int                         `json:"successful_analyses"`
	FailedAnalyses       int                         `json:"failed_analyses"`
	SuccessRate          float64                     `json:"success_rate"`
	AggregateMetrics     AggregateMetrics            `json:"aggregate_metrics"`
	RequirementsSummary  RequirementsSummary         `json:"requirements_summary"`
	CategoryDistribution map[extract.CategoryTag]int `json:"category_distribution"`
}

// SummaryReport summarizes every collected result
func (p *Processor) SummaryReport() (*Summary, error) {
	return Summarize(p.Results())
}

// Summarize builds a Summary for results. Success rate is the fraction of all
// items analyzed; averages are over successful items and rounded to two places.
func Summarize(results []Result) (*Summary, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	s := &Summary{
		TotalFilesProcessed:  len(results),
		CategoryDistribution: map[extract.CategoryTag]int{},
	}
	var complexity float64
	for _, r := range results {
		if r.Failed() {
			s.FailedAnalyses++
			continue
		}
		s.SuccessfulAnalyses++
		s.AggregateMetrics.TotalTextLength += r.TextLength
		s.AggregateMetrics.TotalWordCount += r.WordCount
		complexity += r.ComplexityScore
		s.RequirementsSummary.TotalRequirementsFound += r.RequirementCount()
		for tag, items := range r.Requirements.CategorizedRequirements {
			s.CategoryDistribution[tag] += len(items)
		}
	}

	s.SuccessRate = float64(s.SuccessfulAnalyses) / float64(len(results))
	if s.SuccessfulAnalyses > 0 {
		n := float64(s.SuccessfulAnalyses)
		s.AggregateMetrics.AverageComplexityScore = round2(complexity / n)
		s.RequirementsSummary.AverageRequirementsPerJob = round2(float64(s.RequirementsSummary.TotalRequirementsFound) / n)
	}
	return s, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
