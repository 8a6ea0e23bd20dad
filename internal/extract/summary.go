package extract

import (
	"strings"
	"unicode/utf8"
)

// minSummarySentenceLength is the rune count a segment must exceed to count as a sentence
const minSummarySentenceLength = 20

// requirementDensityThreshold separates "many" from "fewer" requirements
const requirementDensityThreshold = 0.3

// Recommendation wording
const (
	RecommendTechnicalSkills  = "Focus on highlighting relevant technical skills in your resume"
	RecommendExperience       = "Emphasize relevant work experience and achievements"
	RecommendEducation        = "Ensure your education credentials are clearly stated"
	RecommendManyRequirements = "This job has many requirements - consider if you meet most criteria"
	RecommendFewRequirements  = "This job has fewer requirements - may be more entry-level"
)

// Summary holds the aggregate requirement statistics of a document
type Summary struct {
	TotalSentences        int     `json:"total_sentences"`
	RequirementSentences  int     `json:"requirement_sentences"`
	RequirementDensity    float64 `json:"requirement_density"`
	EstimatedRequirements int     `json:"estimated_requirements"`
}

// Summarizer computes Summary values and recommendation text
type Summarizer struct {
	keywords []string
}

// NewSummarizer binds the requirement keywords of v
func NewSummarizer(v Vocabulary) *Summarizer {
	return &Summarizer{keywords: lowerAll(v.RequirementKeywords)}
}

// Summarize counts sentences in raw and how many of them carry a requirement
// keyword. EstimatedRequirements adds both detector outputs without
// cross-deduplication.
func (s *Summarizer) Summarize(raw string, patternReqs, listReqs []string) Summary {
	var summary Summary
	for _, segment := range summarySplitRe.Split(raw, -1) {
		segment = strings.TrimSpace(segment)
		if utf8.RuneCountInString(segment) <= minSummarySentenceLength {
			continue
		}
		summary.TotalSentences++
		if containsAny(strings.ToLower(segment), s.keywords) {
			summary.RequirementSentences++
		}
	}
	if summary.TotalSentences > 0 {
		summary.RequirementDensity = float64(summary.RequirementSentences) / float64(summary.TotalSentences)
	}
	summary.EstimatedRequirements = len(patternReqs) + len(listReqs)
	return summary
}

// Recommend returns advisory strings: one per populated technical skills,
// experience or education category, then a density message
func (s *Summarizer) Recommend(categorized map[CategoryTag][]string, summary Summary) []string {
	out := []string{}
	if len(categorized[CategoryTechnicalSkills]) > 0 {
		out = append(out, RecommendTechnicalSkills)
	}
	if len(categorized[CategoryExperience]) > 0 {
		out = append(out, RecommendExperience)
	}
	if len(categorized[CategoryEducation]) > 0 {
		out = append(out, RecommendEducation)
	}
	if summary.RequirementDensity > requirementDensityThreshold {
		out = append(out, RecommendManyRequirements)
	} else {
		out = append(out, RecommendFewRequirements)
	}
	return out
}
