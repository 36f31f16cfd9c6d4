package structure

import (
	"strings"
)

// extractBody collects the text of the section introduced by header,
// starting at page index start and reading at most budget pages. It stops
// before the first validated header whose line does not contain header.
//
// A running page header that repeats the section title verbatim does not
// end the section; a near-identical one does.
func extractBody(src Source, v *Validator, start int, header string, budget int) (string, error) {
	var buf strings.Builder

	end := min(start+budget, src.NumPages())
	for i := start; i < end; i++ {
		page, err := src.Page(i)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(page.Text, "\n") {
			if v.Validate(line, page, i+1) && !strings.Contains(line, header) {
				return strings.TrimSpace(buf.String()), nil
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	return strings.TrimSpace(buf.String()), nil
}
