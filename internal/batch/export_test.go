package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

func sampleResults() []Result {
	ok := (&stubAnalyzer{}).Analyze(context.Background(), "Go required\nSQL preferred")
	ok.Requirements.CategorizedRequirements[extract.CategoryTools] = []string{"Git"}
	return []Result{
		{Report: ok, FileInfo: &FileInfo{Filename: "a.txt", FilePath: "/jobs/a.txt", FileSize: 26}},
		{FileInfo: &FileInfo{Filename: "b.txt", FilePath: "/jobs/b.txt"}, Error: "document contains no text"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"filename", "file_path",
		"text_length", "word_count", "complexity_score",
		"total_sentences", "requirement_sentences", "requirement_density", "estimated_requirements",
		"experience_count", "tools_count",
		"error",
	}, records[0])
	assert.Equal(t, []string{
		"a.txt", "/jobs/a.txt",
		"25", "4", "2.5",
		"2", "2", "1", "0",
		"2", "1",
		"",
	}, records[1])
	assert.Equal(t, "b.txt", records[2][0])
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "document contains no text", records[2][len(records[2])-1])
}

func TestWriteCSV_Rows(t *testing.T) {
	report := (&stubAnalyzer{}).Analyze(context.Background(), "Go required")
	results := []Result{{Report: report, RowInfo: &RowInfo{RowNumber: 3, RowID: "J-9"}}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"row_id", "row_number"}, records[0][:2])
	assert.Equal(t, []string{"J-9", "3"}, records[1][:2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Contains(t, decoded[0], "requirements")
	assert.Contains(t, decoded[0], "complexity_score")
	assert.Equal(t, "a.txt", decoded[0]["file_info"].(map[string]any)["filename"])
	assert.NotContains(t, decoded[0], "error")
	assert.NotContains(t, decoded[0], "row_info")

	assert.Equal(t, "document contains no text", decoded[1]["error"])
	assert.NotContains(t, decoded[1], "requirements")
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestProcessor_Save(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "Go required")
	p := NewProcessor(&stubAnalyzer{})
	_, err := p.ProcessDirectory(context.Background(), dir, nil)
	require.NoError(t, err)

	out := filepath.Join(dir, "out", "results")
	require.NoError(t, p.Save(out+".json", "json"))
	require.NoError(t, p.Save(out+".csv", "CSV"))
	assert.Error(t, p.Save(out+".xml", "xml"))

	data, err := os.ReadFile(out + ".json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filename": "a.txt"`)

	data, err = os.ReadFile(out + ".csv")
	require.NoError(t, err)
	assert.Contains(t, string(data), "filename,file_path,text_length")
}
