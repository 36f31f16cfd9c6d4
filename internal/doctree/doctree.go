package doctree

// Document is a paginated source document, fully loaded into memory.
type Document struct {
	Title   string         // Document title (from metadata or filename)
	Pages   []Page         // Pages in reading order
	Outline []OutlineEntry // Native outline, nil when the format has none
}

// Page is one page of a document.
type Page struct {
	Index int    // 0-based page index
	Text  string // Plain text, lines separated by '\n'
	Runs  []Run  // Styled runs in reading order
}

// Run is a contiguous span of text carrying uniform style.
type Run struct {
	Text     string `json:"text"`
	Bold     bool   `json:"bold"`
	Line     int    `json:"line"`     // Line index within the page
	Position int    `json:"position"` // Ordinal of the run within the page
}

// OutlineEntry is a single bookmark from a document's native outline.
type OutlineEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page"` // 1-based target page
}

// Section is an extracted top-level structural unit.
type Section struct {
	Title       string       `json:"title" yaml:"title"`
	Level       int          `json:"level,omitempty" yaml:"level,omitempty"` // Outline depth; 0 for scanned sections
	Page        int          `json:"page" yaml:"page"`                       // 1-based
	Text        string       `json:"text" yaml:"text"`
	Subsections []Subsection `json:"subsections" yaml:"subsections"`
}

// Subsection is a labeled block of a section body.
type Subsection struct {
	Label   string `json:"label" yaml:"label"`
	Content string `json:"content" yaml:"content"`
}

// NumPages reports the page count.
func (d *Document) NumPages() int {
	return len(d.Pages)
}

// Page returns the page at index i.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.Pages) {
		return nil, &PageRangeError{Index: i, Count: len(d.Pages)}
	}
	return &d.Pages[i], nil
}

// OutlineEntries returns the native outline, if any.
func (d *Document) OutlineEntries() []OutlineEntry {
	return d.Outline
}
