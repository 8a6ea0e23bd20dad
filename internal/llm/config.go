// Package llm wraps the Gemini API behind a small client interface used for
// LLM-backed entity recognition.
package llm

import "strings"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for extraction and tagging
	TierLite ModelTier = "lite"
	// TierStandard is for structured output that needs more reasoning
	TierStandard ModelTier = "standard"
)

// Config maps tiers to Gemini model names
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// NewConfig returns the default configuration with every tier pinned to
// modelName when it is non-empty
func NewConfig(modelName string) *Config {
	cfg := DefaultConfig()
	if modelName = strings.TrimSpace(modelName); modelName != "" {
		for tier := range cfg.Models {
			cfg.Models[tier] = modelName
		}
	}
	return cfg
}

// GetModel returns the model name for a tier, falling back to standard then lite
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
