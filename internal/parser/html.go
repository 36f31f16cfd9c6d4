package parser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
	"golang.org/x/net/html"
)

var htmlSpace = regexp.MustCompile(`\s+`)

// HTMLParser handles HTML files. The body is a single page unless an
// element asks for a CSS page break. Headings, <b> and <strong> are bold;
// headings also feed the outline.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := trimExt(filename, ".html", ".htm")
	if t := findTitle(doc); t != "" {
		title = t
	}

	var d docBuilder
	root := findBody(doc)
	if root == nil {
		root = doc
	}
	htmlWalk(&d, root, false, false)

	return d.document(title), nil
}

func htmlWalk(d *docBuilder, n *html.Node, bold, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			lines := strings.Split(n.Data, "\n")
			for i, line := range lines {
				if i > 0 {
					d.cur.endLine()
				}
				d.cur.add(line, bold)
			}
			return
		}
		d.cur.add(htmlSpace.ReplaceAllString(n.Data, " "), bold)
		return
	case html.ElementNode:
		// handled below
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			htmlWalk(d, c, bold, pre)
		}
		return
	}

	switch n.Data {
	case "script", "style", "nav", "footer", "header":
		return
	case "br":
		d.cur.endLine()
		return
	case "b", "strong":
		bold = true
	case "pre":
		pre = true
	}

	style := strings.ToLower(attr(n, "style"))
	if strings.Contains(style, "page-break-before") && !d.cur.empty() {
		d.newPage()
	}

	if level := headingLevel(n.Data); level > 0 {
		d.heading(level, textContent(n))
		bold = true
	}

	block := isBlockElement(n.Data)
	if block {
		d.cur.endLine()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		htmlWalk(d, c, bold, pre)
	}
	if block {
		d.cur.endLine()
	}

	if strings.Contains(style, "page-break-after") {
		d.newPage()
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "ul", "ol", "dl", "dt", "dd", "td", "th", "tr", "table",
		"blockquote", "pre", "section", "article", "main", "aside",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(htmlSpace.ReplaceAllString(buf.String(), " "))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
