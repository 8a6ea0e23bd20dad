package extract

import "encoding/json"

// ErrNoDescription is the report-level error for blank input
const ErrNoDescription = "No job description provided"

// Requirements is the requirements block of a Report
type Requirements struct {
	TextRequirements        []string                 `json:"text_requirements"`
	IndividualRequirements  []string                 `json:"individual_requirements"`
	EntityRequirements      []Entity                 `json:"entity_requirements"`
	CategorizedRequirements map[CategoryTag][]string `json:"categorized_requirements"`
	Summary                 Summary                  `json:"summary"`
	// Error is set instead of every other field when there was nothing to analyze
	Error string `json:"error,omitempty"`
}

type requirementsJSON Requirements

// MarshalJSON emits only {"error": ...} for failed extractions
func (r Requirements) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	return json.Marshal(requirementsJSON(r))
}

// Failed reports whether the block carries an error instead of results
func (r Requirements) Failed() bool {
	return r.Error != ""
}

// Report is the full analysis of one posting
type Report struct {
	Requirements    Requirements `json:"requirements"`
	TextLength      int          `json:"text_length"`
	WordCount       int          `json:"word_count"`
	ComplexityScore float64      `json:"complexity_score"`
	Recommendations []string     `json:"recommendations"`
}

// RequirementCount is the number of pattern plus list requirements
func (r *Report) RequirementCount() int {
	return len(r.Requirements.TextRequirements) + len(r.Requirements.IndividualRequirements)
}
