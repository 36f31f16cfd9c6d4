package structure

import (
	"sort"
	"strings"

	"github.com/dgallion1/regsect/internal/doctree"
)

// Assemble concatenates section lists and stable-sorts them by page, so
// sections on the same page keep their discovery order.
func Assemble(lists ...[]doctree.Section) []doctree.Section {
	out := []doctree.Section{}
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out
}

// Filter returns the sections whose title contains query, ignoring case.
// An empty query matches everything.
func Filter(sections []doctree.Section, query string) []doctree.Section {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sections
	}
	out := []doctree.Section{}
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), query) {
			out = append(out, s)
		}
	}
	return out
}
