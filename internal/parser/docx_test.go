package parser

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/dgallion1/regsect/internal/doctree"
	"github.com/dgallion1/regsect/internal/structure"
	"github.com/fumiama/go-docx"
)

func buildDOCX(t *testing.T, build func(*docx.Docx)) []byte {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	build(doc)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXParser_PagesRunsAndOutline(t *testing.T) {
	data := buildDOCX(t, func(d *docx.Docx) {
		d.AddParagraph().Style("Heading1").AddText("Flight Operations")
		d.AddParagraph().AddText("FLT 3.2").Bold()
		p := d.AddParagraph()
		p.AddText("Note: ").Bold()
		p.AddText("crew rest applies")
		d.AddParagraph().AddPageBreaks()
		d.AddParagraph().Style("Heading 2").AddText("Cabin")
		d.AddParagraph().AddText("CAB 1.1 Seating")
	})

	doc, err := (&DOCXParser{}).Parse(bytes.NewReader(data), "Manual.DOCX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Manual" {
		t.Errorf("expected title %q, got %q", "Manual", doc.Title)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if want := "Flight Operations\nFLT 3.2\nNote: crew rest applies"; doc.Pages[0].Text != want {
		t.Errorf("page 0: expected %q, got %q", want, doc.Pages[0].Text)
	}
	if want := "Cabin\nCAB 1.1 Seating"; doc.Pages[1].Text != want {
		t.Errorf("page 1: expected %q, got %q", want, doc.Pages[1].Text)
	}

	wantRuns := []doctree.Run{
		{Text: "Flight Operations", Bold: true, Line: 0, Position: 0},
		{Text: "FLT 3.2", Bold: true, Line: 1, Position: 1},
		{Text: "Note: ", Bold: true, Line: 2, Position: 2},
		{Text: "crew rest applies", Bold: false, Line: 2, Position: 3},
	}
	if !reflect.DeepEqual(doc.Pages[0].Runs, wantRuns) {
		t.Errorf("expected runs %+v, got %+v", wantRuns, doc.Pages[0].Runs)
	}
	if doc.Pages[1].Index != 1 || doc.Pages[1].Runs[1].Bold {
		t.Errorf("expected plain body run on page 1, got %+v", doc.Pages[1])
	}

	wantOutline := []doctree.OutlineEntry{
		{Level: 1, Title: "Flight Operations", Page: 1},
		{Level: 2, Title: "Cabin", Page: 2},
	}
	if !reflect.DeepEqual(doc.Outline, wantOutline) {
		t.Errorf("expected outline %+v, got %+v", wantOutline, doc.Outline)
	}

	// The bold run is what lets a coded header through the validator.
	v := structure.NewValidator(structure.DefaultRanges())
	if !v.Validate("FLT 3.2", &doc.Pages[0], 120) {
		t.Error("expected bold FLT 3.2 run to validate")
	}
}

func TestDOCXParser_NoHeadingsNoOutline(t *testing.T) {
	data := buildDOCX(t, func(d *docx.Docx) {
		d.AddParagraph().AddText("Plain body text.")
	})

	doc, err := (&DOCXParser{}).Parse(bytes.NewReader(data), "plain.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Text != "Plain body text." {
		t.Errorf("unexpected pages %+v", doc.Pages)
	}
	if doc.Outline != nil {
		t.Errorf("expected no outline, got %+v", doc.Outline)
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"Heading 3", 3},
		{"heading6", 6},
		{"Heading7", 0},
		{"Title", 0},
		{"", 0},
	}
	for _, tt := range tests {
		para := &docx.Paragraph{}
		if tt.style != "" {
			para.Style(tt.style)
		}
		if got := docxHeadingLevel(para); got != tt.want {
			t.Errorf("style %q: expected level %d, got %d", tt.style, tt.want, got)
		}
	}
}

func TestDOCXParser_Corrupt(t *testing.T) {
	if _, err := (&DOCXParser{}).Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Error("expected error for corrupt docx")
	}
}
