package parser

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/regsect/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

func TestPDFRows_GroupsAndStyles(t *testing.T) {
	texts := []pdflib.Text{
		{Font: "Times-Roman", FontSize: 10, X: 90, Y: 680.8, W: 20, S: "text"},
		{Font: "Times-Bold", FontSize: 10, X: 50, Y: 681, W: 30, S: "Note:"},
		{Font: "Helvetica-Bold", FontSize: 10, X: 50, Y: 700, W: 20, S: "FLT"},
		{Font: "Helvetica-Bold", FontSize: 10, X: 75, Y: 700, W: 15, S: "3.2"},
		{Font: "Helvetica", FontSize: 10, X: 10, Y: 650, W: 0, S: ""},
	}

	var b pageBuilder
	for _, row := range pdfRows(texts) {
		addPDFRow(&b, row)
	}
	page := b.page(4)

	if page.Index != 4 {
		t.Errorf("expected index 4, got %d", page.Index)
	}
	if page.Text != "FLT 3.2\nNote: text" {
		t.Errorf("unexpected page text %q", page.Text)
	}

	want := []doctree.Run{
		{Text: "FLT 3.2", Bold: true, Line: 0, Position: 0},
		{Text: "Note: ", Bold: true, Line: 1, Position: 1},
		{Text: "text", Bold: false, Line: 1, Position: 2},
	}
	if !reflect.DeepEqual(page.Runs, want) {
		t.Errorf("expected runs %+v\ngot %+v", want, page.Runs)
	}
}

func TestIsBoldFont(t *testing.T) {
	tests := map[string]bool{
		"Helvetica-Bold":      true,
		"ABCDEF+Arial-BoldMT": true,
		"Roboto-Black":        true,
		"Times-Roman":         false,
		"Helvetica-Oblique":   false,
		"":                    false,
	}
	for font, want := range tests {
		if got := isBoldFont(font); got != want {
			t.Errorf("isBoldFont(%q) = %v, want %v", font, got, want)
		}
	}
}

func TestSplitPages(t *testing.T) {
	pages := splitPages("ORG 1.1\nbody\n\fORG 1.2\n\f")
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Text != "ORG 1.1\nbody" || pages[1].Text != "ORG 1.2" {
		t.Errorf("unexpected pages %+v", pages)
	}
}

// minimalPDF builds an uncompressed PDF with one line of Helvetica text per
// page and a correct cross-reference table.
func minimalPDF(numPages int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	fontObj := 3 + 2*numPages
	var kids []string
	for i := range numPages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), numPages))
	for i := range numPages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 4+2*i))
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (Page %d) Tj ET", i+1)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func withBookmarks(t *testing.T, data []byte, bms []pdfcpu.Bookmark) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(data), &out, bms, true, nil); err != nil {
		t.Fatalf("add bookmarks: %v", err)
	}
	return out.Bytes()
}

func TestPDFOutline_FlattensBookmarks(t *testing.T) {
	data := withBookmarks(t, minimalPDF(3), []pdfcpu.Bookmark{
		{Title: "Flight Operations", PageFrom: 1, Kids: []pdfcpu.Bookmark{
			{Title: "FLT 3.2 Crew rest", PageFrom: 2},
		}},
		{Title: "Cabin", PageFrom: 3},
	})

	got := pdfOutline(data, 3)
	want := []doctree.OutlineEntry{
		{Level: 1, Title: "Flight Operations", Page: 1},
		{Level: 2, Title: "FLT 3.2 Crew rest", Page: 2},
		{Level: 1, Title: "Cabin", Page: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected outline %+v, got %+v", want, got)
	}

	// Entries past the last extracted page are dropped.
	got = pdfOutline(data, 2)
	if len(got) != 2 || got[1].Title != "FLT 3.2 Crew rest" {
		t.Errorf("expected entries for pages 1-2 only, got %+v", got)
	}
}

func TestPDFOutline_NoBookmarks(t *testing.T) {
	if got := pdfOutline(minimalPDF(2), 2); got != nil {
		t.Errorf("expected nil outline, got %+v", got)
	}
}

func TestPDFOutline_UnreadableInput(t *testing.T) {
	if got := pdfOutline([]byte("not a pdf"), 1); got != nil {
		t.Errorf("expected nil outline, got %+v", got)
	}
}
