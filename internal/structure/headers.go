package structure

import (
	"regexp"
	"strings"
)

var (
	// "45.1 Nationality and registration marks"
	decimalHeaderPattern  = regexp.MustCompile(`^\d+\.\d+\s+[A-Za-z]`)
	numericHeadingPattern = regexp.MustCompile(`^(\d+\.\d+)\s+(.+)$`)

	// "FLT 3.2", "ORG1.1.4"; nothing else on the line.
	codedHeaderPattern = regexp.MustCompile(`^(` + strings.Join(SectionCodes, "|") + `)\s*(\d+(?:\.\d+)*)$`)
)

// IsDecimalHeader reports whether a trimmed line is a decimal-numbered
// header: a section number like 45.1, whitespace, then a letter.
func IsDecimalHeader(line string) bool {
	return decimalHeaderPattern.MatchString(line)
}

// IsNumericHeading reports whether a trimmed line opens a section in a
// numeric-header document. Unlike IsDecimalHeader any text may follow.
func IsNumericHeading(line string) bool {
	return numericHeadingPattern.MatchString(line)
}

// MatchCodedHeader matches a trimmed line against the coded header form
// CODE + numeric path and returns the code and path.
func MatchCodedHeader(line string) (code, path string, ok bool) {
	m := codedHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
