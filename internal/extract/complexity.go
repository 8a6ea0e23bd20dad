package extract

import (
	"strings"
	"unicode/utf8"
)

// Complexity weights
const (
	wordLengthWeight       = 0.3
	sentenceLengthWeight   = 0.4
	technicalDensityWeight = 0.3
	maxComplexity          = 10.0
)

// ComplexityScorer estimates how demanding a posting reads on a 0-10 scale
type ComplexityScorer struct {
	terms map[string]struct{}
}

// NewComplexityScorer binds the technical terms of v
func NewComplexityScorer(v Vocabulary) *ComplexityScorer {
	terms := make(map[string]struct{}, len(v.TechnicalTerms))
	for _, t := range lowerAll(v.TechnicalTerms) {
		if t != "" {
			terms[t] = struct{}{}
		}
	}
	return &ComplexityScorer{terms: terms}
}

// Score combines average word length, average sentence length and technical
// term density, clamped to [0, 10]
func (s *ComplexityScorer) Score(raw string) float64 {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return 0
	}

	var letters, technical int
	for _, w := range words {
		letters += utf8.RuneCountInString(w)
		if _, ok := s.terms[strings.ToLower(w)]; ok {
			technical++
		}
	}
	avgWordLength := float64(letters) / float64(len(words))
	density := float64(technical) / float64(len(words))

	var sentences, sentenceWords int
	for _, segment := range sentenceSplitRe.Split(raw, -1) {
		n := len(strings.Fields(segment))
		if n == 0 {
			continue
		}
		sentences++
		sentenceWords += n
	}
	var avgSentenceLength float64
	if sentences > 0 {
		avgSentenceLength = float64(sentenceWords) / float64(sentences)
	}

	score := avgWordLength*wordLengthWeight +
		avgSentenceLength*sentenceLengthWeight +
		density*technicalDensityWeight
	return clamp(score, 0, maxComplexity)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
