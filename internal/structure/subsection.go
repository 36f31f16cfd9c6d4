package structure

import (
	"regexp"
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
)

var (
	numericLabelPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s*(.*)$`)
	letterLabelPattern  = regexp.MustCompile(`^([a-zA-Z]\))\s*(.*)$`)
	romanLabelPattern   = regexp.MustCompile(`^([ivxlc]+)(\)|\.)?(?:\s+(.*)|$)`)
	romanNumeralPattern = regexp.MustCompile(`^c{0,3}(?:xc|xl|l?x{0,3})(?:ix|iv|v?i{0,3})$`)
)

// NumericLabel splits a line that starts with a dotted integer label
// ("7", "7.2", "7.2.1", optionally followed by a period).
func NumericLabel(line string) (label, rest string, ok bool) {
	m := numericLabelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// LetterLabel splits a line that starts with a lettered label like "a)".
func LetterLabel(line string) (label, rest string, ok bool) {
	m := letterLabelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// RomanLabel splits a line that starts with a lowercase roman numeral token
// ("iv", "ix)", "ii."). The token must be a well-formed numeral below 400.
func RomanLabel(line string) (label, rest string, ok bool) {
	m := romanLabelPattern.FindStringSubmatch(line)
	if m == nil || !romanNumeralPattern.MatchString(m[1]) {
		return "", "", false
	}
	label = m[1]
	if m[2] == ")" {
		label += ")"
	}
	return label, m[3], true
}

// SplitLabel tries the label shapes in order: numeric, lettered, roman.
func SplitLabel(line string) (label, rest string, ok bool) {
	if label, rest, ok = NumericLabel(line); ok {
		return label, rest, true
	}
	if label, rest, ok = LetterLabel(line); ok {
		return label, rest, true
	}
	return RomanLabel(line)
}

// Decompose splits a section body into labeled subsections in order of
// appearance. Text before the first label is not part of any subsection.
// Nesting is not reconstructed: "1" and "1.1" are siblings in the output.
func Decompose(body string) []doctree.Subsection {
	subsections := []doctree.Subsection{}

	var label string
	var content []string
	open := false

	flush := func() {
		if !open {
			return
		}
		if l := strings.TrimSpace(label); l != "" {
			subsections = append(subsections, doctree.Subsection{
				Label:   l,
				Content: strings.TrimSpace(strings.Join(content, "\n")),
			})
		}
		content = content[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if l, rest, ok := SplitLabel(line); ok {
			flush()
			label = l
			content = append(content, rest)
			open = true
			continue
		}
		if open {
			content = append(content, line)
		}
	}
	flush()

	return subsections
}
