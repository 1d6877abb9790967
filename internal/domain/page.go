package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the trip service.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil pointers fall back to page=1, limit=20. Page is capped so Offset
// cannot overflow.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	if page != nil && *page >= 1 {
		// Offset must fit in an int.
		p.Page = min(*page, math.MaxInt/p.Limit)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page within a sequence of
// length n, clamped so slicing never panics.
func (p PaginationParams) Window(n int) (start, end int) {
	if p.Page < 1 || p.Limit < 1 || p.Page-1 > n/p.Limit {
		return n, n
	}
	start = min(p.Offset(), n)
	end = min(start+p.Limit, n)
	return start, end
}
