package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizer_Summarize(t *testing.T) {
	s := NewSummarizer(DefaultVocabulary())

	t.Run("No sentences", func(t *testing.T) {
		got := s.Summarize("", nil, nil)
		assert.Equal(t, Summary{}, got)
	})

	t.Run("Short segments ignored", func(t *testing.T) {
		got := s.Summarize("Must know Go. Required.", []string{"a"}, nil)
		assert.Equal(t, 0, got.TotalSentences)
		assert.Equal(t, 0.0, got.RequirementDensity)
		assert.Equal(t, 1, got.EstimatedRequirements)
	})

	t.Run("Density", func(t *testing.T) {
		raw := "We need someone with strong experience in Go. Lunch is provided on Fridays for all."
		got := s.Summarize(raw, []string{"a", "b"}, []string{"b", "c", "d"})
		assert.Equal(t, Summary{
			TotalSentences:        2,
			RequirementSentences:  1,
			RequirementDensity:    0.5,
			EstimatedRequirements: 5,
		}, got)
	})

	t.Run("Bullets count as sentences", func(t *testing.T) {
		raw := "\n- Five years of backend experience\n- Free snacks in the kitchen daily"
		got := s.Summarize(raw, nil, nil)
		assert.Equal(t, 2, got.TotalSentences)
		assert.Equal(t, 1, got.RequirementSentences)
	})
}

func TestSummarizer_DensityBounds(t *testing.T) {
	s := NewSummarizer(DefaultVocabulary())
	inputs := []string{
		"",
		"short",
		"Experience with distributed systems is required. Knowledge of SQL is preferred.",
		"The office has a great view of the river. Parking is available in the garage.",
	}
	for _, input := range inputs {
		got := s.Summarize(input, nil, nil)
		assert.GreaterOrEqual(t, got.RequirementDensity, 0.0)
		assert.LessOrEqual(t, got.RequirementDensity, 1.0)
		if got.TotalSentences == 0 {
			assert.Equal(t, 0.0, got.RequirementDensity)
		}
	}
}

func TestSummarizer_Recommend(t *testing.T) {
	s := NewSummarizer(DefaultVocabulary())

	tests := []struct {
		name        string
		categorized map[CategoryTag][]string
		density     float64
		expected    []string
	}{
		{
			name: "All categories, dense",
			categorized: map[CategoryTag][]string{
				CategoryEducation:       {"Degree"},
				CategoryExperience:      {"5 years"},
				CategoryTechnicalSkills: {"Go"},
				CategoryTools:           {"Jira"},
			},
			density: 0.5,
			expected: []string{
				RecommendTechnicalSkills,
				RecommendExperience,
				RecommendEducation,
				RecommendManyRequirements,
			},
		},
		{
			name:        "Nothing categorized",
			categorized: map[CategoryTag][]string{},
			density:     0,
			expected:    []string{RecommendFewRequirements},
		},
		{
			name:        "Threshold is exclusive",
			categorized: map[CategoryTag][]string{CategoryEducation: {"Degree"}},
			density:     0.3,
			expected:    []string{RecommendEducation, RecommendFewRequirements},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Recommend(tt.categorized, Summary{RequirementDensity: tt.density})
			assert.Equal(t, tt.expected, got)
		})
	}
}
