package doctree

import "fmt"

// PageRangeError reports a page index outside the document.
type PageRangeError struct {
	Index int
	Count int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page index %d out of range (document has %d pages)", e.Index, e.Count)
}
