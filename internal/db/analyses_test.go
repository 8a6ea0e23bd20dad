package db

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative", -5, -1, DefaultListLimit, 0},
		{"within range", 10, 20, 10, 20},
		{"capped", 1000, 0, MaxListLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := normalizePage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestAnalysis_DecodeReport(t *testing.T) {
	report := &extract.Report{
		Requirements: extract.Requirements{
			TextRequirements:       []string{"Python required"},
			IndividualRequirements: []string{},
			EntityRequirements:     []extract.Entity{},
			CategorizedRequirements: map[extract.CategoryTag][]string{
				extract.CategoryTechnicalSkills: {"Python required"},
			},
		},
		TextLength:      15,
		WordCount:       2,
		ComplexityScore: 3.1,
		Recommendations: []string{extract.RecommendTechnicalSkills},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)

	a := &Analysis{ID: uuid.New(), Report: data}
	decoded, err := a.DecodeReport()
	require.NoError(t, err)
	assert.Equal(t, report, decoded)

	failed := &Analysis{Report: json.RawMessage(`{"requirements":{"error":"No job description provided"},"text_length":0,"word_count":0,"complexity_score":0,"recommendations":[]}`)}
	decoded, err = failed.DecodeReport()
	require.NoError(t, err)
	assert.True(t, decoded.Requirements.Failed())

	_, err = (&Analysis{}).DecodeReport()
	assert.Error(t, err)

	_, err = (&Analysis{Report: json.RawMessage(`{`)}).DecodeReport()
	assert.Error(t, err)
}

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			data, err := migrationsFS.ReadFile(name)
			require.NoError(t, err)
			sql := string(data)
			assert.True(t, strings.Contains(sql, "-- +goose Up"), "missing goose Up annotation")
			assert.True(t, strings.Contains(sql, "-- +goose Down"), "missing goose Down annotation")
		})
	}

	data, err := migrationsFS.ReadFile("migrations/00001_create_job_analyses.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "content_hash      TEXT NOT NULL UNIQUE")
}
