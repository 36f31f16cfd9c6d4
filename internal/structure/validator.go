package structure

import (
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
)

// Validator decides whether a line of a page is a genuine section header.
type Validator struct {
	ranges RangeTable
}

// NewValidator returns a Validator using the given page windows.
func NewValidator(ranges RangeTable) *Validator {
	return &Validator{ranges: ranges}
}

// Validate reports whether line, found on page with the given 1-based
// number, is a section header.
//
// Decimal headers are accepted on their text alone. Coded headers must
// additionally sit inside their code's page window and appear on the page
// as a bold run with identical trimmed text. The run lookup is by exact
// text, so headers split across runs or rendered with ligatures are missed.
func (v *Validator) Validate(line string, page *doctree.Page, pageNumber int) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if IsDecimalHeader(line) {
		return true
	}

	code, _, ok := MatchCodedHeader(line)
	if !ok {
		return false
	}

	window, ok := v.ranges.Lookup(code)
	if !ok || !window.Contains(pageNumber) {
		return false
	}

	return hasBoldRun(page, line)
}

func hasBoldRun(page *doctree.Page, text string) bool {
	if page == nil {
		return false
	}
	for _, run := range page.Runs {
		if run.Bold && strings.TrimSpace(run.Text) == text {
			return true
		}
	}
	return false
}
