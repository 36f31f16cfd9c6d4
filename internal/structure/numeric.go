package structure

import (
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
)

// openSection is the numeric parser's state while a section is open.
// A nil *openSection means no section has been opened yet.
type openSection struct {
	title string
	page  int // 1-based page of the heading
	lines []string
}

func (s *openSection) close() doctree.Section {
	text := strings.Join(s.lines, "\n")
	return doctree.Section{
		Title:       s.title,
		Page:        s.page,
		Text:        text,
		Subsections: Decompose(text),
	}
}

// numericParser splits a numeric-header document in a single pass. Every
// line matching the numeric heading form starts a new section; no style or
// page window checks apply.
type numericParser struct {
	current  *openSection
	sections []doctree.Section
}

func (p *numericParser) headerFound(title string, pageNumber int) {
	p.endOfInput()
	p.current = &openSection{title: title, page: pageNumber}
}

func (p *numericParser) bodyLine(line string) {
	if p.current != nil {
		p.current.lines = append(p.current.lines, line)
	}
}

func (p *numericParser) endOfInput() {
	if p.current != nil {
		p.sections = append(p.sections, p.current.close())
		p.current = nil
	}
}

func parseNumericSections(src Source) ([]doctree.Section, error) {
	p := &numericParser{}

	for i := 0; i < src.NumPages(); i++ {
		page, err := src.Page(i)
		if err != nil {
			return nil, err
		}
		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if IsNumericHeading(line) {
				p.headerFound(line, i+1)
			} else {
				p.bodyLine(line)
			}
		}
	}
	p.endOfInput()

	return p.sections, nil
}
