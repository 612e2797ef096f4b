package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the ledger.
// Page is 1-indexed. Limit is capped at 500 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of rows to return.
	Limit int
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=50).
// The limit is capped at 500; a trip ledger never gets near that.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 50}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 500 {
			p.Limit = 500
		}
	}
	return p
}

// Offset returns the zero-based row offset of the first row on the page.
// A page so large that the offset would overflow an int yields math.MaxInt.
func (p PaginationParams) Offset() int {
	if p.Limit > 0 && p.Page-1 > (math.MaxInt-p.Limit)/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Paginate returns the rows of items that fall on page p.
// Pages past the end are empty, never nil.
func Paginate[T any](items []T, p PaginationParams) ([]T, Pagination) {
	meta := Pagination{Page: p.Page, Limit: p.Limit, Total: len(items)}
	if p.Limit < 1 || p.Page-1 >= (len(items)+p.Limit-1)/p.Limit {
		return []T{}, meta
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}
