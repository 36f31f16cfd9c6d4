package structure

// PageRange is an inclusive range of 1-based page numbers.
type PageRange struct {
	Low  int
	High int
}

// Contains reports whether the 1-based page number falls inside the range.
func (r PageRange) Contains(pageNumber int) bool {
	return r.Low <= pageNumber && pageNumber <= r.High
}

// SectionCodes are the section-type codes recognized in coded headers,
// in manual order.
var SectionCodes = []string{"ORG", "FLT", "DSP", "MNT", "CAB", "GRH", "CGO", "SEC"}

// RangeTable maps a section-type code to the pages its headers may appear on.
// A RangeTable is never modified after construction.
type RangeTable map[string]PageRange

// DefaultRanges returns the page windows of the standard operations manual.
func DefaultRanges() RangeTable {
	return RangeTable{
		"ORG": {Low: 52, High: 114},
		"FLT": {Low: 114, High: 299},
		"DSP": {Low: 299, High: 403},
		"MNT": {Low: 403, High: 490},
		"CAB": {Low: 490, High: 558},
		"GRH": {Low: 558, High: 620},
		"CGO": {Low: 620, High: 656},
		"SEC": {Low: 656, High: 700},
	}
}

// Lookup returns the range configured for code.
func (t RangeTable) Lookup(code string) (PageRange, bool) {
	r, ok := t[code]
	return r, ok
}
