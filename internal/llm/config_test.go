package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.InDelta(t, 0.1, config.Temperature, 1e-6)
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected string
	}{
		{"Empty keeps defaults", "", "gemini-2.5-flash-lite"},
		{"Whitespace keeps defaults", "   ", "gemini-2.5-flash-lite"},
		{"Override pins every tier", "gemini-2.0-flash", "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.model)
			assert.Equal(t, tt.expected, cfg.GetModel(TierLite))
		})
	}
	assert.Equal(t, "custom", NewConfig("custom").GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierStandard))
}
