package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// rowTolerance is the vertical distance, in points, within which glyphs
// are treated as one line.
const rowTolerance = 2.0

// PDFParser handles PDF files. Text and bold runs come from the Go
// library; the bookmark outline comes from pdfcpu. When the library cannot
// read the file and FallbackPdftotext is set, pdftotext supplies plain
// page text without style information.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	pages, err := extractPDFPages(data)
	if err != nil && p.FallbackPdftotext {
		pages, err = extractPdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return &doctree.Document{
		Title:   trimExt(filename, ".pdf"),
		Pages:   pages,
		Outline: pdfOutline(data, len(pages)),
	}, nil
}

// extractPDFPages reads every page with its lines and styled runs. The
// library panics on some malformed inputs; those become errors.
func extractPDFPages(data []byte) (pages []doctree.Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	pages = make([]doctree.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		var b pageBuilder
		if !page.V.IsNull() {
			for _, row := range pdfRows(page.Content().Text) {
				addPDFRow(&b, row)
			}
		}
		pages = append(pages, b.page(i-1))
	}
	return pages, nil
}

// pdfRows groups glyphs into lines by baseline, top of page first, and
// orders each line left to right.
func pdfRows(texts []pdflib.Text) [][]pdflib.Text {
	type row struct {
		y     float64
		texts []pdflib.Text
	}
	var rows []row
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) <= rowTolerance {
				rows[i].texts = append(rows[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{y: t.Y, texts: []pdflib.Text{t}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	out := make([][]pdflib.Text, len(rows))
	for i, r := range rows {
		sort.SliceStable(r.texts, func(a, b int) bool { return r.texts[a].X < r.texts[b].X })
		out[i] = r.texts
	}
	return out
}

// addPDFRow writes one line of glyphs, inserting a space where the
// horizontal gap between glyphs is wider than a fraction of the font size.
func addPDFRow(b *pageBuilder, row []pdflib.Text) {
	for i, t := range row {
		if i > 0 {
			prev := row[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > prev.FontSize*0.15 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.add(" ", isBoldFont(prev.Font))
			}
		}
		b.add(t.S, isBoldFont(t.Font))
	}
	b.endLine()
}

func isBoldFont(font string) bool {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold") || strings.Contains(f, "black") || strings.Contains(f, "heavy")
}

// pdfOutline flattens the bookmark tree into document order. Documents
// without bookmarks, or whose bookmarks pdfcpu cannot read, have no
// outline.
func pdfOutline(data []byte, numPages int) (entries []doctree.OutlineEntry) {
	defer func() {
		if recover() != nil {
			entries = nil
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	bms, err := api.Bookmarks(bytes.NewReader(data), conf)
	if err != nil {
		return nil
	}

	var walk func([]pdfcpu.Bookmark, int)
	walk = func(bms []pdfcpu.Bookmark, level int) {
		for _, bm := range bms {
			title := strings.TrimSpace(bm.Title)
			if title != "" && bm.PageFrom >= 1 && bm.PageFrom <= numPages {
				entries = append(entries, doctree.OutlineEntry{Level: level, Title: title, Page: bm.PageFrom})
			}
			walk(bm.Kids, level+1)
		}
	}
	walk(bms, 1)
	return entries
}

// extractPdftotext shells out to poppler's pdftotext, which only reads
// from a path, and splits its output on form feeds.
func extractPdftotext(data []byte) ([]doctree.Page, error) {
	tmp, err := os.CreateTemp("", "regsect-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	out, err := exec.Command("pdftotext", "-layout", tmpPath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return splitPages(string(out)), nil
}

// splitPages turns form-feed separated text into pages whose runs are all
// plain. The empty chunk after a trailing form feed is not a page.
func splitPages(text string) []doctree.Page {
	chunks := strings.Split(text, "\f")
	if len(chunks) > 1 && strings.TrimSpace(chunks[len(chunks)-1]) == "" {
		chunks = chunks[:len(chunks)-1]
	}
	pages := make([]doctree.Page, 0, len(chunks))
	for i, chunk := range chunks {
		var b pageBuilder
		for _, line := range strings.Split(chunk, "\n") {
			b.addLine(strings.TrimRight(line, "\r"))
		}
		pages = append(pages, b.page(i))
	}
	return pages
}
