package ner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-requirements-extractor/internal/config"
	"github.com/jonathan/job-requirements-extractor/internal/llm"
)

type fakeClient struct {
	answer string
	err    error
	prompt string
	tier   llm.ModelTier
	closed bool
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	return f.answer, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestGemini_Recognize(t *testing.T) {
	client := &fakeClient{answer: "```json\n[{\"entity_group\": \"SKILL\", \"word\": \"Go\", \"score\": 0.93}]\n```"}
	g := NewGemini(client)

	records, err := g.Recognize(context.Background(), "Go developer wanted")
	require.NoError(t, err)

	assert.Contains(t, client.prompt, "Go developer wanted")
	assert.NotContains(t, client.prompt, "{{.Text}}")
	assert.Equal(t, llm.TierLite, client.tier)
	require.Len(t, records, 1)
	assert.Equal(t, "SKILL", records[0]["entity_group"])

	require.NoError(t, g.Close())
	assert.True(t, client.closed)
}

func TestGemini_Errors(t *testing.T) {
	_, err := NewGemini(&fakeClient{err: errors.New("quota")}).Recognize(context.Background(), "x")
	var rerr *RecognizerError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "gemini", rerr.Backend)
	assert.Contains(t, err.Error(), "quota")

	_, err = NewGemini(&fakeClient{answer: "I could not find any entities."}).Recognize(context.Background(), "x")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	b, err := FromConfig(ctx, &config.Config{NERBackend: config.NERBackendNone})
	require.NoError(t, err)
	assert.Nil(t, b.Recognizer)
	assert.NoError(t, b.Close())

	b, err = FromConfig(ctx, &config.Config{NERBackend: config.NERBackendHTTP, NERURL: "http://localhost:9/ner"})
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, b.Recognizer)

	_, err = FromConfig(ctx, &config.Config{NERBackend: config.NERBackendHTTP})
	assert.Error(t, err)

	_, err = FromConfig(ctx, &config.Config{NERBackend: config.NERBackendGemini})
	assert.ErrorContains(t, err, "API key is required")

	_, err = FromConfig(ctx, &config.Config{NERBackend: "spacy"})
	assert.ErrorContains(t, err, "unknown ner backend")
}
