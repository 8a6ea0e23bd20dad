package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var indentedLineRe = regexp.MustCompile(`^\s{4,}`)

// ListDetector extracts bullet, numbered and indented line items
type ListDetector struct {
	indicators []string
}

// NewListDetector binds the list indicator vocabulary of v
func NewListDetector(v Vocabulary) *ListDetector {
	return &ListDetector{indicators: lowerAll(v.ListIndicators)}
}

// Detect returns qualifying list items in document order. Duplicates are kept.
func (d *ListDetector) Detect(text string) []string {
	out := []string{}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var item string
		switch {
		case hasMarker(line):
			item = stripMarker(line)
		case indentedLineRe.MatchString(line):
			item = strings.TrimSpace(line)
		default:
			continue
		}

		if utf8.RuneCountInString(item) <= 3 {
			continue
		}
		if !containsAnyWord(strings.ToLower(item), d.indicators) {
			continue
		}
		out = append(out, capitalizeFirst(item))
	}
	return out
}
