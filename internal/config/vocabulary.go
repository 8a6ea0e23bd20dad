package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

// LoadVocabulary reads a JSON word-list file and merges it over the default
// vocabulary. Lists absent from the file keep their defaults.
func LoadVocabulary(path string) (extract.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Vocabulary{}, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var override extract.Vocabulary
	if err := json.Unmarshal(data, &override); err != nil {
		return extract.Vocabulary{}, fmt.Errorf("failed to parse vocabulary JSON: %w", err)
	}

	for i, c := range override.Categories {
		if strings.TrimSpace(string(c.Tag)) == "" {
			return extract.Vocabulary{}, fmt.Errorf("vocabulary error: category %d has no tag", i)
		}
		if len(c.Keywords) == 0 {
			return extract.Vocabulary{}, fmt.Errorf("vocabulary error: category %q has no keywords", c.Tag)
		}
	}

	return extract.DefaultVocabulary().Merge(override), nil
}

// Vocabulary returns the configured vocabulary, or the default when no file is set
func (c *Config) Vocabulary() (extract.Vocabulary, error) {
	if c.VocabularyFile == "" {
		return extract.DefaultVocabulary(), nil
	}
	return LoadVocabulary(c.VocabularyFile)
}
