package observability

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/batch"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

func sampleReport() *extract.Report {
	return &extract.Report{
		Requirements: extract.Requirements{
			TextRequirements: []string{"5 years of Go experience required"},
			CategorizedRequirements: map[extract.CategoryTag][]string{
				extract.CategoryExperience: {"5 years of Go experience required"},
				extract.CategoryEducation:  {"Bachelor's degree preferred"},
			},
			Summary: extract.Summary{
				TotalSentences:        4,
				RequirementSentences:  2,
				RequirementDensity:    0.5,
				EstimatedRequirements: 3,
			},
		},
		TextLength:      12345,
		WordCount:       42,
		ComplexityScore: 3.24,
		Recommendations: []string{extract.RecommendExperience},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintReport(sampleReport(), false))
	output := buf.String()

	assert.Contains(t, output, "JOB REQUIREMENTS ANALYSIS RESULTS")
	assert.Contains(t, output, "Text Length: 12,345 characters")
	assert.Contains(t, output, "Word Count: 42 words")
	assert.Contains(t, output, "Complexity Score: 3.2/10")
	assert.Contains(t, output, "Requirement Density: 50.0%")
	assert.Contains(t, output, " 1. 5 years of Go experience required")
	assert.Contains(t, output, "1. "+extract.RecommendExperience)
	assert.NotContains(t, output, "DETAILED ANALYSIS")

	experience := strings.Index(output, "EXPERIENCE:")
	education := strings.Index(output, "EDUCATION:")
	require.NotEqual(t, -1, experience)
	require.NotEqual(t, -1, education)
	assert.Less(t, experience, education, "categories follow taxonomy order")
}

func TestPrintReport_Verbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintReport(sampleReport(), true))

	assert.Contains(t, buf.String(), "DETAILED ANALYSIS")
	assert.Contains(t, buf.String(), `"text_length": 12345`)
}

func TestPrintReport_Limits(t *testing.T) {
	report := sampleReport()
	report.Requirements.TextRequirements = nil
	for i := 1; i <= 12; i++ {
		report.Requirements.TextRequirements = append(report.Requirements.TextRequirements, fmt.Sprintf("Requirement number %d", i))
	}
	long := strings.Repeat("x", 100)
	report.Requirements.CategorizedRequirements[extract.CategoryTools] = []string{long, "b", "c", "d", "e", "f", "g"}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintReport(report, false))
	output := buf.String()

	assert.Contains(t, output, "10. Requirement number 10")
	assert.NotContains(t, output, "Requirement number 11")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, strings.Repeat("x", 80)+"...")
	assert.NotContains(t, output, strings.Repeat("x", 81))
	assert.Contains(t, output, "• e")
	assert.NotContains(t, output, "• f")
}

func TestPrintReport_Failed(t *testing.T) {
	report := extract.New().Analyze(context.Background(), "   ")

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintReport(report, false))

	assert.Contains(t, buf.String(), extract.ErrNoDescription)
	assert.NotContains(t, buf.String(), "REQUIREMENTS SUMMARY")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintReport(nil, true))
	assert.Empty(t, buf.String())
}

func TestWithCategoryOrder(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).WithCategoryOrder([]extract.CategoryTag{extract.CategoryEducation})
	require.NoError(t, p.PrintReport(sampleReport(), false))

	output := buf.String()
	assert.Less(t, strings.Index(output, "EDUCATION:"), strings.Index(output, "EXPERIENCE:"))
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatchSummary(&batch.Summary{
		TotalFilesProcessed: 4,
		SuccessfulAnalyses:  3,
		FailedAnalyses:      1,
		SuccessRate:         0.75,
		AggregateMetrics:    batch.AggregateMetrics{TotalWordCount: 1500, AverageComplexityScore: 2.5},
		RequirementsSummary: batch.RequirementsSummary{TotalRequirementsFound: 9, AverageRequirementsPerJob: 3},
		CategoryDistribution: map[extract.CategoryTag]int{
			extract.CategoryExperience: 3,
			extract.CategoryTools:      0,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "BATCH PROCESSING SUMMARY")
	assert.Contains(t, output, "Success Rate: 75.0%")
	assert.Contains(t, output, "Total Words: 1,500")
	assert.Contains(t, output, "Average Complexity: 2.50/10")
	assert.Contains(t, output, "experience:")
	assert.NotContains(t, output, "tools:")
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatInt(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 80))
	assert.Equal(t, "ééé...", truncate("éééé", 3))
}
