package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/schemas"
)

const posting = "Senior Backend Engineer\n\nRequirements:\n- 5+ years of Python experience required\n- Bachelor's degree in Computer Science preferred\n- Strong communication skills\n"

func TestAnalyzeCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "No input",
			args:        []string{"analyze"},
			errorString: "at least one of the flags",
		},
		{
			name:        "Text and file",
			args:        []string{"analyze", "-t", "Python required", "-f", "job.txt"},
			errorString: "none of the others can be",
		},
		{
			name:        "Blank text",
			args:        []string{"analyze", "-t", "   ", "--no-cache"},
			errorString: "empty job description",
		},
		{
			name:        "Missing file",
			args:        []string{"analyze", "-f", "does-not-exist.txt", "--no-cache"},
			errorString: "does-not-exist.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	output, err := executeCommand(t, "analyze", "-t", posting, "--json", "--no-cache")
	require.NoError(t, err)

	var report extract.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report), output)
	assert.Contains(t, report.Requirements.IndividualRequirements, "5+ years of Python experience required")
	assert.NotEmpty(t, report.Requirements.CategorizedRequirements[extract.CategoryExperience])
	assert.NoError(t, schemas.ValidateReport([]byte(output)))
}

func TestAnalyzeCommand_Formatted(t *testing.T) {
	output, err := executeCommand(t, "analyze", "-t", posting, "--no-cache", "-v")
	require.NoError(t, err)

	assert.Contains(t, output, "JOB REQUIREMENTS ANALYSIS RESULTS")
	assert.Contains(t, output, "BASIC METRICS")
	assert.Contains(t, output, "CATEGORIZED REQUIREMENTS")
	assert.Contains(t, output, "DETAILED ANALYSIS")
}

func TestAnalyzeCommand_FileOutputValidate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "job.md")
	require.NoError(t, os.WriteFile(input, []byte(posting), 0o644))
	outPath := filepath.Join(dir, "out", "report.json")

	output, err := executeCommand(t, "analyze", "-f", input, "-o", outPath, "--validate", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, output, "Results saved to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateReport(data))
}

func TestAnalyzeCommand_UnsupportedFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "job.rtf")
	require.NoError(t, os.WriteFile(input, []byte(posting), 0o644))

	_, err := executeCommand(t, "analyze", "-f", input, "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
