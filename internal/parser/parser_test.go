package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.txt", "*parser.TextParser"},
		{"a.MD", "*parser.MarkdownParser"},
		{"a.markdown", "*parser.MarkdownParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.pdf", "*parser.PDFParser"},
		{"a.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}

	if _, err := ForFile("table.csv", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestForFile_PassesPDFFallback(t *testing.T) {
	p, err := ForFile("manual.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected fallback option to reach the PDF parser")
	}
}

func TestParse_WrapsFailuresInOpenError(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b"), "table.csv", Options{})
	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *OpenError, got %T: %v", err, err)
	}
	if openErr.Filename != "table.csv" || !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unexpected open error: %v", openErr)
	}

	_, err = Parse(strings.NewReader("not a pdf at all"), "broken.pdf", Options{})
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *OpenError for corrupt pdf, got %T: %v", err, err)
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manual.txt")
	if err := os.WriteFile(path, []byte("ORG 1.1\fORG 1.2"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenFile(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "manual" || doc.NumPages() != 2 {
		t.Errorf("unexpected document: title=%q pages=%d", doc.Title, doc.NumPages())
	}

	_, err = OpenFile(filepath.Join(dir, "missing.pdf"), Options{})
	var openErr *OpenError
	if !errors.As(err, &openErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected OpenError wrapping ErrNotExist, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Manual.PDF") {
		t.Error("expected .PDF to be supported")
	}
	if IsSupportedExtension("data.csv") {
		t.Error("expected .csv to be unsupported")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}
