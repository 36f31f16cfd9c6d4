package parser

import (
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
)

// segment is a piece of a line with a single style.
type segment struct {
	text string
	bold bool
}

// pageBuilder accumulates lines and styled runs for one page. Adjacent
// segments on a line with the same style collapse into a single run.
type pageBuilder struct {
	lines []string
	runs  []doctree.Run
	cur   []segment
}

// add appends text to the current line.
func (b *pageBuilder) add(text string, bold bool) {
	if text == "" {
		return
	}
	if n := len(b.cur); n > 0 && b.cur[n-1].bold == bold {
		b.cur[n-1].text += text
		return
	}
	b.cur = append(b.cur, segment{text: text, bold: bold})
}

// endLine finishes the current line. Blank lines are dropped.
func (b *pageBuilder) endLine() {
	segs := b.cur
	b.cur = nil

	var line strings.Builder
	for _, s := range segs {
		line.WriteString(s.text)
	}
	if strings.TrimSpace(line.String()) == "" {
		return
	}

	lineIdx := len(b.lines)
	b.lines = append(b.lines, line.String())
	for _, s := range segs {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		b.runs = append(b.runs, doctree.Run{
			Text:     s.text,
			Bold:     s.bold,
			Line:     lineIdx,
			Position: len(b.runs),
		})
	}
}

// addLine appends a whole unstyled line.
func (b *pageBuilder) addLine(text string) {
	b.add(text, false)
	b.endLine()
}

func (b *pageBuilder) empty() bool {
	if len(b.lines) > 0 {
		return false
	}
	for _, s := range b.cur {
		if strings.TrimSpace(s.text) != "" {
			return false
		}
	}
	return true
}

// page finishes any open line and returns the page.
func (b *pageBuilder) page(index int) doctree.Page {
	b.endLine()
	return doctree.Page{
		Index: index,
		Text:  strings.Join(b.lines, "\n"),
		Runs:  b.runs,
	}
}

// docBuilder accumulates pages.
type docBuilder struct {
	pages   []doctree.Page
	outline []doctree.OutlineEntry
	cur     pageBuilder
}

// pageNumber is the 1-based number of the page being built.
func (d *docBuilder) pageNumber() int {
	return len(d.pages) + 1
}

func (d *docBuilder) heading(level int, title string) {
	title = strings.TrimSpace(title)
	if level <= 0 || title == "" {
		return
	}
	d.outline = append(d.outline, doctree.OutlineEntry{Level: level, Title: title, Page: d.pageNumber()})
}

func (d *docBuilder) newPage() {
	d.pages = append(d.pages, d.cur.page(len(d.pages)))
	d.cur = pageBuilder{}
}

// document finishes the last page. A trailing empty page is dropped unless
// it is the only one.
func (d *docBuilder) document(title string) *doctree.Document {
	if !d.cur.empty() || len(d.pages) == 0 {
		d.newPage()
	}
	return &doctree.Document{Title: title, Pages: d.pages, Outline: d.outline}
}
