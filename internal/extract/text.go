package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	disallowedCharRe  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.,;:!?()•*]`)

	// requirementSplitRe splits on terminators and on line-leading list markers
	requirementSplitRe = regexp.MustCompile(`[.!?]+|\n-|\n•|\n\*|\n\d+\.|\n\d+\)`)
	// summarySplitRe is the coarser split used for sentence statistics
	summarySplitRe = regexp.MustCompile(`[.!?]+|\n-|\n•|\n\*`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

	// markerRe matches leading bullets and "1." / "2)" numbering. A number only
	// counts as a marker when followed by "." or ")" and whitespace, so that
	// quantities such as "5+ years" survive stripping.
	markerRe = regexp.MustCompile(`^\s*(?:[-•*]+\s*|\d+[.)]\s+)+`)
)

// Normalize collapses runs of spaces and tabs, keeps line breaks, and strips
// characters outside word characters, whitespace, basic punctuation and the
// bullet glyphs • * -.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = disallowedCharRe.ReplaceAllString(text, "")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// hasMarker reports whether s begins with a bullet or list-number marker
func hasMarker(s string) bool {
	return markerRe.MatchString(s)
}

// stripMarker removes leading bullet and numbering markers and trims the rest
func stripMarker(s string) string {
	return strings.TrimSpace(markerRe.ReplaceAllString(s, ""))
}

// capitalizeFirst upper-cases the first rune when it is a letter
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsLetter(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// cleanCandidate is the shared candidate normalization: marker-stripped,
// trimmed, first letter capitalized
func cleanCandidate(s string) string {
	return capitalizeFirst(stripMarker(strings.TrimSpace(s)))
}

// containsAny reports whether lower contains any of terms as a substring
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// containsAnyWord reports whether lower contains any of terms as a whole word.
// A trailing plural "s" is tolerated ("apis" matches "api") but other suffixes
// are not ("teamwork" does not match "team").
func containsAnyWord(lower string, terms []string) bool {
	for _, term := range terms {
		if term != "" && containsWord(lower, term) {
			return true
		}
	}
	return false
}

func containsWord(text, term string) bool {
	for start := 0; start < len(text); {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if end < len(text) && text[end] == 's' {
			if boundaryBefore(text, idx) && boundaryAfter(text, end+1) {
				return true
			}
		}
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
