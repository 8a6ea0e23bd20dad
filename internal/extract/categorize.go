package extract

import "strings"

// Categorizer tags requirement candidates with category labels
type Categorizer struct {
	categories []Category
}

// NewCategorizer binds the category taxonomy of v
func NewCategorizer(v Vocabulary) *Categorizer {
	categories := cloneCategories(v.Categories)
	for i := range categories {
		categories[i].Keywords = lowerAll(categories[i].Keywords)
	}
	return &Categorizer{categories: categories}
}

// Categorize maps each tag to the candidates mentioning one of its keywords.
// A candidate can land in several categories; items are deduplicated per
// category and empty categories are omitted.
func (c *Categorizer) Categorize(candidates []string) map[CategoryTag][]string {
	out := make(map[CategoryTag][]string)
	seen := make(map[CategoryTag]map[string]struct{})

	for _, candidate := range candidates {
		item := cleanCandidate(candidate)
		if item == "" {
			continue
		}
		lower := strings.ToLower(candidate)

		for _, category := range c.categories {
			if !containsAny(lower, category.Keywords) {
				continue
			}
			if seen[category.Tag] == nil {
				seen[category.Tag] = make(map[string]struct{})
			}
			if _, dup := seen[category.Tag][item]; dup {
				continue
			}
			seen[category.Tag][item] = struct{}{}
			out[category.Tag] = append(out[category.Tag], item)
		}
	}
	return out
}
