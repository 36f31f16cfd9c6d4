package structure

import (
	"strings"
	"sync"

	"github.com/dgallion1/regsect/internal/doctree"
)

// DefaultPageBudget is how many pages a section may span by default.
const DefaultPageBudget = 8

// Source is a paginated document the extractor reads from.
// Implementations must be safe for concurrent reads when Concurrency > 1.
type Source interface {
	NumPages() int
	Page(index int) (*doctree.Page, error)
}

// Outliner is implemented by sources that carry a native outline.
type Outliner interface {
	OutlineEntries() []doctree.OutlineEntry
}

// Options configures an Extractor.
type Options struct {
	PageBudget  int        // Max pages per section; DefaultPageBudget if <= 0
	Ranges      RangeTable // Page windows for coded headers; DefaultRanges if nil
	Concurrency int        // Parallel boundary extractions; sequential if <= 1
}

// Extractor turns a document into an ordered list of sections.
type Extractor struct {
	budget      int
	concurrency int
	validator   *Validator
}

// NewExtractor creates an Extractor, filling unset options with defaults.
func NewExtractor(opts Options) *Extractor {
	if opts.PageBudget <= 0 {
		opts.PageBudget = DefaultPageBudget
	}
	if opts.Ranges == nil {
		opts.Ranges = DefaultRanges()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Extractor{
		budget:      opts.PageBudget,
		concurrency: opts.Concurrency,
		validator:   NewValidator(opts.Ranges),
	}
}

// Result is the outcome of extracting one document.
type Result struct {
	Dialect  Dialect           `json:"dialect"`
	Sections []doctree.Section `json:"sections"`
}

// ExtractSections extracts sections with the default page windows.
func ExtractSections(src Source, pageBudget int) ([]doctree.Section, error) {
	res, err := NewExtractor(Options{PageBudget: pageBudget}).Extract(src)
	if err != nil {
		return nil, err
	}
	return res.Sections, nil
}

// Extract classifies the document and extracts its sections, sorted by
// page. A page read failure fails the whole extraction.
//
// Outline sections and scanned sections are not de-duplicated against each
// other, so a section listed in the outline and carrying a scannable header
// is reported twice.
func (e *Extractor) Extract(src Source) (*Result, error) {
	if src.NumPages() == 0 {
		return &Result{Dialect: DialectOutline, Sections: []doctree.Section{}}, nil
	}

	first, err := src.Page(0)
	if err != nil {
		return nil, err
	}
	dialect := Classify(first.Text)

	if dialect == DialectNumeric {
		sections, err := parseNumericSections(src)
		if err != nil {
			return nil, err
		}
		return &Result{Dialect: dialect, Sections: Assemble(sections)}, nil
	}

	var pending []sectionStart
	if o, ok := src.(Outliner); ok {
		pending = append(pending, outlineStarts(o.OutlineEntries(), src.NumPages())...)
	}

	candidates, err := e.Scan(src)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		pending = append(pending, sectionStart{
			title: c.Text,
			page:  c.PageIndex + 1,
			start: c.PageIndex,
		})
	}

	sections, err := e.build(src, pending)
	if err != nil {
		return nil, err
	}
	return &Result{Dialect: dialect, Sections: Assemble(sections)}, nil
}

// sectionStart is a discovered section whose body has not been read yet.
type sectionStart struct {
	title string
	level int
	page  int // 1-based page reported on the section
	start int // page index where body extraction begins
}

// outlineStarts converts outline entries into section starts, skipping
// entries that point outside the document.
func outlineStarts(entries []doctree.OutlineEntry, numPages int) []sectionStart {
	starts := make([]sectionStart, 0, len(entries))
	for _, entry := range entries {
		if entry.Page < 1 || entry.Page > numPages {
			continue
		}
		starts = append(starts, sectionStart{
			title: entry.Title,
			level: entry.Level,
			page:  entry.Page,
			start: entry.Page - 1,
		})
	}
	return starts
}

// HeaderCandidate is a validated header line found while scanning.
type HeaderCandidate struct {
	Text      string
	PageIndex int
	LineIndex int
}

// Scan walks every line of every page and returns the validated headers,
// keeping only the first occurrence of each header text.
func (e *Extractor) Scan(src Source) ([]HeaderCandidate, error) {
	var found []HeaderCandidate
	seen := make(map[string]bool)

	for i := 0; i < src.NumPages(); i++ {
		page, err := src.Page(i)
		if err != nil {
			return nil, err
		}
		for j, line := range strings.Split(page.Text, "\n") {
			if !e.validator.Validate(line, page, i+1) {
				continue
			}
			header := strings.TrimSpace(line)
			if seen[header] {
				continue
			}
			seen[header] = true
			found = append(found, HeaderCandidate{Text: header, PageIndex: i, LineIndex: j})
		}
	}
	return found, nil
}

// ExtractBody returns the text of the section introduced by header,
// reading forward from page index start.
func (e *Extractor) ExtractBody(src Source, start int, header string) (string, error) {
	return extractBody(src, e.validator, start, header, e.budget)
}

// build reads the body of every pending section. Extractions are
// independent, so they run in parallel when configured; output order
// always matches input order.
func (e *Extractor) build(src Source, pending []sectionStart) ([]doctree.Section, error) {
	sections := make([]doctree.Section, len(pending))
	errs := make([]error, len(pending))

	buildOne := func(i int) {
		p := pending[i]
		text, err := e.ExtractBody(src, p.start, p.title)
		if err != nil {
			errs[i] = err
			return
		}
		sections[i] = doctree.Section{
			Title:       p.title,
			Level:       p.level,
			Page:        p.page,
			Text:        text,
			Subsections: Decompose(text),
		}
	}

	if e.concurrency <= 1 {
		for i := range pending {
			buildOne(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return sections, nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)
	for i := range pending {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			buildOne(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sections, nil
}
