package schemas

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateReport_ExtractorOutput(t *testing.T) {
	posting := "Requirements:\n" +
		"- 5+ years of Python experience required\n" +
		"- Bachelor's degree in Computer Science preferred\n" +
		"- Strong communication skills essential\n"

	recognizer := extract.RecognizerFunc(func(context.Context, string) ([]extract.RawEntity, error) {
		return []extract.RawEntity{
			{"entity_group": "SKILL", "word": "Python", "score": 0.95},
			{"entity_group": "SKILL", "word": "Excel", "score": 0.4},
		}, nil
	})
	ex := extract.New(extract.WithRecognizer(recognizer))

	tests := []struct {
		name string
		text string
	}{
		{"posting", posting},
		{"no requirements", "Join our friendly office in Lisbon."},
		{"empty input", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(ex.Analyze(context.Background(), tt.text))
			require.NoError(t, err)
			assert.NoError(t, ValidateReport(data))
		})
	}
}

func TestValidateReport_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{
			name:  "missing fields",
			json:  `{"requirements": {"error": "x"}}`,
			field: "(root)",
		},
		{
			name: "complexity out of range",
			json: `{"requirements": {"error": "x"}, "text_length": 0, "word_count": 0,
				"complexity_score": 11, "recommendations": []}`,
			field: "complexity_score",
		},
		{
			name: "low confidence entity",
			json: `{"requirements": {"text_requirements": [], "individual_requirements": [],
				"entity_requirements": [{"text": "Go", "type": "SKILL", "confidence": 0.5}],
				"categorized_requirements": {}, "summary": {"total_sentences": 0,
				"requirement_sentences": 0, "requirement_density": 0, "estimated_requirements": 0}},
				"text_length": 2, "word_count": 1, "complexity_score": 1, "recommendations": []}`,
			field: "requirements",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReport([]byte(tt.json))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := []string{}
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateReport_Malformed(t *testing.T) {
	err := ValidateReport([]byte("{ not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read report")
}

func TestValidateJSON(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)

	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"valid", `{"name": "Ada", "age": 36}`, false},
		{"missing field", `{"age": 36}`, true},
		{"wrong type", `{"name": "Ada", "age": "old"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeTemp(t, "doc.json", tt.json)
			err := ValidateJSON(schemaPath, jsonPath)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_NotFound(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	jsonPath := writeTemp(t, "doc.json", `{"name": "Ada"}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_Malformed(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	jsonPath := writeTemp(t, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, jsonPath)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}
