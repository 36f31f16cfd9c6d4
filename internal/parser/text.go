package parser

import (
	"io"

	"github.com/dgallion1/regsect/internal/doctree"
)

// TextParser handles plain text files. Form feeds separate pages; there is
// no style information, so no run is bold.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &doctree.Document{
		Title: trimExt(filename, ".txt"),
		Pages: splitPages(string(data)),
	}, nil
}
