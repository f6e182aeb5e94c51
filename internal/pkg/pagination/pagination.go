// Package pagination slices result sets into fixed-size pages. Out-of-range
// page numbers clamp to the nearest valid page instead of failing, so a
// stale ?page= link always renders something.
package pagination

// DefaultPerPage is the page size used by every post listing.
const DefaultPerPage = 10

type Page struct {
	Number     int
	PerPage    int
	TotalPages int
	TotalItems int64
}

// New computes the page for a requested page number. Requests below 1 clamp
// to the first page, requests past the end clamp to the last. An empty
// result set still yields one (empty) page.
func New(totalItems int64, perPage, requested int) Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}

// Offset is the number of records to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit is the maximum number of records on this page.
func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}

func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}
