package ner

import (
	"context"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
	"github.com/jonathan/job-requirements-extractor/internal/llm"
	"github.com/jonathan/job-requirements-extractor/internal/prompts"
)

// Gemini asks an LLM to tag entities and return them as JSON records
type Gemini struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGemini wraps client; recognition runs on the lite tier
func NewGemini(client llm.Client) *Gemini {
	return &Gemini{client: client, tier: llm.TierLite}
}

// Recognize prompts the model with text and decodes its JSON array answer
func (g *Gemini) Recognize(ctx context.Context, text string) ([]extract.RawEntity, error) {
	template, err := prompts.Get("ner.json", "extract-entities")
	if err != nil {
		return nil, &RecognizerError{Backend: "gemini", Message: "prompt unavailable", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{"Text": text})

	answer, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return nil, &RecognizerError{Backend: "gemini", Message: "generation failed", Cause: err}
	}

	return decodeEntities("gemini", []byte(llm.ExtractJSONArray(answer)))
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	return g.client.Close()
}
