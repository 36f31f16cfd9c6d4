package structure

import (
	"regexp"
	"strings"
)

// Dialect is the structural convention a document uses to mark sections.
type Dialect string

const (
	DialectOutline    Dialect = "outline"     // Native outline plus scanned headers
	DialectRangeBound Dialect = "range_bound" // Coded headers (FLT 3.2) bound to page windows
	DialectNumeric    Dialect = "numeric"     // Decimal headers (45.1 Title), single pass
)

var numericDialectPattern = regexp.MustCompile(`(?i)ECAR\s+Part`)

// Classify decides the dialect from the text of the first page.
// A document with no recognizable signal is outline-based.
func Classify(firstPage string) Dialect {
	if numericDialectPattern.MatchString(firstPage) {
		return DialectNumeric
	}
	for _, code := range SectionCodes {
		if strings.Contains(firstPage, code) {
			return DialectRangeBound
		}
	}
	return DialectOutline
}
