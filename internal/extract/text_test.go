package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty input", "", ""},
		{"Collapses spaces and tabs", "Python \t  and   Go", "Python and Go"},
		{"Preserves line breaks", "line one\nline two", "line one\nline two"},
		{"Converts CRLF", "a\r\nb", "a\nb"},
		{"Keeps bullet glyphs", "• one\n* two\n- three", "• one\n* two\n- three"},
		{"Strips symbols", "C++ & Go!", "C Go!"},
		{"Keeps basic punctuation", "Skills: Go, SQL; (APIs)?", "Skills: Go, SQL; (APIs)?"},
		{"Keeps non-ASCII letters", "Café résumé", "Café résumé"},
		{"Trims", "   padded   ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestStripMarker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"- item", "item"},
		{"• item", "item"},
		{"* item", "item"},
		{"1. item", "item"},
		{"12) item", "item"},
		{"- 1. nested", "nested"},
		{"   - indented", "indented"},
		{"5+ years", "5+ years"},
		{"1.5 years", "1.5 years"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarker(tt.input))
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Python", capitalizeFirst("python"))
	assert.Equal(t, "Élan", capitalizeFirst("élan"))
	assert.Equal(t, "5 years", capitalizeFirst("5 years"))
	assert.Equal(t, "", capitalizeFirst(""))
}

func TestContainsAnyWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		terms    []string
		expected bool
	}{
		{"Whole word", "lead the team", []string{"team"}, true},
		{"Suffix rejected", "we value teamwork", []string{"team"}, false},
		{"Plural accepted", "build rest apis", []string{"api"}, true},
		{"Prefix rejected", "leadership", []string{"lead"}, false},
		{"Multi-word term", "machine learning models", []string{"machine learning"}, true},
		{"Slash term", "ci/cd pipelines", []string{"ci/cd"}, true},
		{"Later occurrence matches", "teamwork and team", []string{"team"}, true},
		{"Empty terms", "anything", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsAnyWord(tt.text, tt.terms))
		})
	}
}
