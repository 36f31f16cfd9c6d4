package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Form feeds
// separate pages. Headings and strong emphasis are bold; headings also
// feed the outline.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	var d docBuilder
	for i, chunk := range strings.Split(string(src), "\f") {
		if i > 0 {
			d.newPage()
		}
		page := []byte(chunk)
		doc := md.Parser().Parse(text.NewReader(page))
		markdownBlock(&d, doc, page)
	}

	return d.document(trimExt(filename, ".md", ".markdown")), nil
}

func markdownBlock(d *docBuilder, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		d.heading(node.Level, markdownPlain(node, src))
		markdownInline(&d.cur, node, src, true)
		d.cur.endLine()
		return
	case *ast.Paragraph, *ast.TextBlock:
		markdownInline(&d.cur, node, src, false)
		d.cur.endLine()
		return
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			d.cur.addLine(strings.TrimRight(string(line.Value(src)), "\r\n"))
		}
		return
	case *ast.ThematicBreak:
		return
	case *ast.ListItem:
		// goldmark drops ordered list markers; they are subsection labels.
		if label := orderedListLabel(node); label != "" {
			d.cur.add(label, false)
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		markdownBlock(d, c, src)
	}
}

// orderedListLabel rebuilds the marker of an ordered list item, such as
// "2. " or "2) ". Bullet items have none.
func orderedListLabel(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return ""
	}
	n := list.Start
	for c := list.FirstChild(); c != nil && c != ast.Node(item); c = c.NextSibling() {
		n++
	}
	return strconv.Itoa(n) + string(list.Marker) + " "
}

// markdownInline writes inline content, ending a line at each soft or
// hard break.
func markdownInline(b *pageBuilder, n ast.Node, src []byte, bold bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.add(string(node.Segment.Value(src)), bold)
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.endLine()
			}
		case *ast.String:
			b.add(string(node.Value), bold)
		case *ast.AutoLink:
			b.add(string(node.Label(src)), bold)
		case *ast.Emphasis:
			markdownInline(b, node, src, bold || node.Level >= 2)
		default:
			markdownInline(b, node, src, bold)
		}
	}
}

// markdownPlain is the unstyled text of an inline container.
func markdownPlain(n ast.Node, src []byte) string {
	var b pageBuilder
	markdownInline(&b, n, src, false)
	b.endLine()
	return strings.Join(b.lines, " ")
}
