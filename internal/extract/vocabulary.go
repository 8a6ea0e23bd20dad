package extract

import "slices"

// CategoryTag labels the subject matter of a requirement
type CategoryTag string

// Category tags in taxonomy order
const (
	CategoryExperience      CategoryTag = "experience"
	CategoryEducation       CategoryTag = "education"
	CategoryTechnicalSkills CategoryTag = "technical_skills"
	CategorySoftSkills      CategoryTag = "soft_skills"
	CategoryTools           CategoryTag = "tools"
	CategoryMethodologies   CategoryTag = "methodologies"
	CategoryLanguages       CategoryTag = "languages"
	CategoryIndustries      CategoryTag = "industries"
)

// Category pairs a tag with the keywords that select it
type Category struct {
	Tag      CategoryTag `json:"tag"`
	Keywords []string    `json:"keywords"`
}

// Vocabulary is the word-list configuration for every stage of the pipeline.
// Components copy the lists they need at construction, so a Vocabulary can be
// reused or modified afterwards without affecting a built Extractor.
type Vocabulary struct {
	// RequirementKeywords mark a sentence as requirement-bearing (pattern detector, summary)
	RequirementKeywords []string `json:"requirement_keywords,omitempty"`
	// ExclusionPhrases mark boilerplate; they override keyword matches
	ExclusionPhrases []string `json:"exclusion_phrases,omitempty"`
	// ListIndicators is the broader vocabulary used for bullet and indented lines
	ListIndicators []string `json:"list_indicators,omitempty"`
	// Categories is the ordered category taxonomy
	Categories []Category `json:"categories,omitempty"`
	// TechnicalTerms feed the technical density signal of the complexity score
	TechnicalTerms []string `json:"technical_terms,omitempty"`
}

var defaultRequirementKeywords = []string{
	"required", "must", "should", "preferred", "desired", "essential",
	"necessary", "mandatory", "experience", "skills", "knowledge",
	"proficient", "expert", "skilled", "qualified", "background",
	"understanding", "familiarity", "certification", "degree",
	"years", "senior", "junior", "entry", "level",
}

var defaultExclusionPhrases = []string{
	"we offer", "we provide", "benefits include", "responsibilities",
	"duties", "about us", "company", "team", "culture",
}

var defaultListTechnologies = []string{
	"python", "java", "javascript", "aws", "docker", "kubernetes",
	"sql", "agile", "git", "ci/cd", "api", "machine learning",
	"tensorflow", "pytorch", "microservices", "monitoring", "security",
	"html", "css", "angular",
}

var defaultListLeadership = []string{
	"lead", "mentor", "manage", "team", "leadership", "foster",
	"conduct", "oversee", "drive", "ensure", "maintain", "champion",
	"collaborate", "liaise", "translate", "stakeholders", "timelines",
	"sprint", "reporting", "quality", "operations", "reliability",
	"performance", "production", "innovation", "processes",
}

var defaultCategories = []Category{
	{Tag: CategoryExperience, Keywords: []string{
		"years", "experience", "senior", "junior", "entry", "mid", "level",
		"background", "track record", "proven",
	}},
	{Tag: CategoryEducation, Keywords: []string{
		"degree", "bachelor", "master", "phd", "certification", "diploma",
		"associate", "qualification", "academic",
	}},
	{Tag: CategoryTechnicalSkills, Keywords: []string{
		"python", "java", "javascript", "typescript", "react", "angular",
		"vue", "node", "sql", "aws", "azure", "gcp", "docker", "kubernetes",
	}},
	{Tag: CategorySoftSkills, Keywords: []string{
		"communication", "leadership", "teamwork", "problem-solving",
		"analytical", "critical thinking", "collaboration", "interpersonal",
	}},
	{Tag: CategoryTools, Keywords: []string{
		"git", "jenkins", "jira", "confluence", "slack", "teams",
		"trello", "asana", "notion", "figma",
	}},
	{Tag: CategoryMethodologies, Keywords: []string{
		"agile", "scrum", "waterfall", "kanban", "lean", "ci/cd",
		"devops", "mlops", "dataops", "tdd", "bdd",
	}},
	{Tag: CategoryLanguages, Keywords: []string{
		"english", "spanish", "french", "german", "chinese", "japanese",
		"korean", "russian", "arabic", "hindi",
	}},
	{Tag: CategoryIndustries, Keywords: []string{
		"finance", "healthcare", "e-commerce", "education", "technology",
		"manufacturing", "retail", "consulting", "government",
	}},
}

var defaultTechnicalTerms = []string{
	"api", "database", "algorithm", "framework", "architecture",
	"deployment", "infrastructure", "microservices",
}

// DefaultVocabulary returns a fresh copy of the built-in word lists
func DefaultVocabulary() Vocabulary {
	listIndicators := make([]string, 0, len(defaultRequirementKeywords)+len(defaultListTechnologies)+len(defaultListLeadership))
	listIndicators = append(listIndicators, defaultRequirementKeywords...)
	listIndicators = append(listIndicators, defaultListTechnologies...)
	listIndicators = append(listIndicators, defaultListLeadership...)

	return Vocabulary{
		RequirementKeywords: slices.Clone(defaultRequirementKeywords),
		ExclusionPhrases:    slices.Clone(defaultExclusionPhrases),
		ListIndicators:      listIndicators,
		Categories:          cloneCategories(defaultCategories),
		TechnicalTerms:      slices.Clone(defaultTechnicalTerms),
	}
}

// Merge returns a copy of v where every non-empty list in override replaces
// the corresponding list in v
func (v Vocabulary) Merge(override Vocabulary) Vocabulary {
	merged := v.Clone()
	if len(override.RequirementKeywords) > 0 {
		merged.RequirementKeywords = slices.Clone(override.RequirementKeywords)
	}
	if len(override.ExclusionPhrases) > 0 {
		merged.ExclusionPhrases = slices.Clone(override.ExclusionPhrases)
	}
	if len(override.ListIndicators) > 0 {
		merged.ListIndicators = slices.Clone(override.ListIndicators)
	}
	if len(override.Categories) > 0 {
		merged.Categories = cloneCategories(override.Categories)
	}
	if len(override.TechnicalTerms) > 0 {
		merged.TechnicalTerms = slices.Clone(override.TechnicalTerms)
	}
	return merged
}

// Clone returns a deep copy
func (v Vocabulary) Clone() Vocabulary {
	return Vocabulary{
		RequirementKeywords: slices.Clone(v.RequirementKeywords),
		ExclusionPhrases:    slices.Clone(v.ExclusionPhrases),
		ListIndicators:      slices.Clone(v.ListIndicators),
		Categories:          cloneCategories(v.Categories),
		TechnicalTerms:      slices.Clone(v.TechnicalTerms),
	}
}

// Tags returns the category tags in taxonomy order
func (v Vocabulary) Tags() []CategoryTag {
	tags := make([]CategoryTag, 0, len(v.Categories))
	for _, c := range v.Categories {
		tags = append(tags, c.Tag)
	}
	return tags
}

func cloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Tag: c.Tag, Keywords: slices.Clone(c.Keywords)}
	}
	return out
}
