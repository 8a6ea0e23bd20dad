package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	innerSpaceRe  = regexp.MustCompile(`[ \t]{2,}`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	nonPrintingRe = regexp.MustCompile(`[\x{00A0}\x{200B}\x{FEFF}]`)
)

// CleanText normalizes line endings, trailing whitespace, runs of blank lines
// and invisible characters. Leading indentation and bullet markers are kept
// since list detection depends on them.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = nonPrintingRe.ReplaceAllStringFunc(content, func(s string) string {
		if s == "\u00a0" {
			return " "
		}
		return ""
	})

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.Trim(result, "\n")
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	indent := line[:len(line)-len(trimmed)]
	indent = strings.ReplaceAll(indent, "\t", "    ")
	return indent + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// Truncate returns text cut to at most max runes; max <= 0 disables the cap.
// The second result reports whether anything was cut.
func Truncate(text string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:max]), true
}
