package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/regsect/internal/doctree"
)

const numericManual = "ECAR Part 45\nIdentification marks\f45.1 General\nMarks apply.\n45.2 Display of marks\na) Shown on the fuselage."

func TestFindSection(t *testing.T) {
	sections := []doctree.Section{
		{Title: "FLT 3.2.1"},
		{Title: "FLT 3.2"},
		{Title: "DSP 1"},
	}
	tests := []struct {
		want  string
		title string
		ok    bool
	}{
		{"FLT 3.2", "FLT 3.2", true},
		{"flt 3.2", "FLT 3.2.1", true},
		{"dsp", "DSP 1", true},
		{"MNT", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		got, ok := findSection(sections, tt.want)
		if ok != tt.ok || got.Title != tt.title {
			t.Errorf("findSection(%q) = (%q, %v), want (%q, %v)", tt.want, got.Title, ok, tt.title, tt.ok)
		}
	}
}

func TestWriteOutput(t *testing.T) {
	data := map[string]any{"count": 2}

	var buf bytes.Buffer
	if err := writeOutput(&buf, "json", data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || decoded["count"] != 2 {
		t.Errorf("unexpected json output %q", buf.String())
	}

	buf.Reset()
	if err := writeOutput(&buf, "yaml", data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "count: 2\n" {
		t.Errorf("unexpected yaml output %q", buf.String())
	}

	if err := writeOutput(&buf, "xml", data); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExtractCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part45.txt")
	if err := os.WriteFile(path, []byte(numericManual), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { query = "" })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"extract", path, "-o", "yaml", "--query", "display"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out extractOutput
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if out.Dialect != "numeric" || out.Pages != 2 || out.Title != "part45" {
		t.Errorf("unexpected output %+v", out)
	}
	if out.Count != 1 || out.Sections[0].Title != "45.2 Display of marks" {
		t.Errorf("expected one filtered section, got %+v", out.Sections)
	}
	if out.Sections[0].Subsections[0].Label != "a)" {
		t.Errorf("unexpected subsections %+v", out.Sections[0].Subsections)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "regsect dev\n") {
		t.Errorf("unexpected version output %q", buf.String())
	}
}
