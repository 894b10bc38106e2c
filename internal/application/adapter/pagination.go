// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// Pagination bounds shared by every list operation.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 200
)

// Pagination defines pagination options.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination applies defaults to non-positive values and caps the limit.
func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for total rows, never less than one.
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages < 1 {
		return 1
	}
	return pages
}
