package extract

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// minSegmentLength is the shortest trimmed segment the pattern detector considers
const minSegmentLength = 10

// PatternDetector extracts sentence-style requirements by keyword matching
type PatternDetector struct {
	keywords   []string
	exclusions []string
}

// NewPatternDetector binds the requirement keywords and exclusion phrases of v
func NewPatternDetector(v Vocabulary) *PatternDetector {
	return &PatternDetector{
		keywords:   lowerAll(v.RequirementKeywords),
		exclusions: lowerAll(v.ExclusionPhrases),
	}
}

// Detect returns the deduplicated requirement sentences of text, in order of
// first occurrence
func (d *PatternDetector) Detect(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})

	for _, segment := range requirementSplitRe.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if utf8.RuneCountInString(segment) < minSegmentLength {
			continue
		}

		lower := strings.ToLower(segment)
		if !containsAny(lower, d.keywords) {
			continue
		}
		// Boilerplate wins over keywords
		if containsAny(lower, d.exclusions) {
			continue
		}

		candidate := cleanCandidate(segment)
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

func lowerAll(terms []string) []string {
	out := slices.Clone(terms)
	for i, t := range out {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}
