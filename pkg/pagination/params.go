package pagination

import "math"

// Order is a sort direction
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Orders lists the valid sort directions
var Orders = []Order{Asc, Desc}

func (o Order) valid() bool {
	return o == Asc || o == Desc
}

// Pagination is a validated page request
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset returns the number of items preceding the page. It saturates at
// math.MaxInt instead of overflowing for very large pages.
func (p Pagination) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size
func (p Pagination) Limit() int {
	return p.PageSize
}

// Sort is a validated sort request. The zero value means no sorting.
type Sort struct {
	By    string `json:"sort_by,omitempty"`
	Order Order  `json:"sort_order,omitempty"`
}

// IsSet reports whether sorting was requested
func (s Sort) IsSet() bool {
	return s.By != ""
}

// Filter is a validated filter request. Value holds the filter text coerced to the
// declared type of the field: string, int64, uint64, float64, bool, or nil for a nullable
// literal matched with "none". The zero value means no filtering.
type Filter struct {
	By    string `json:"filter_by,omitempty"`
	Value any    `json:"filter_value"`
}

// IsSet reports whether filtering was requested
func (f Filter) IsSet() bool {
	return f.By != ""
}

// PageSort combines pagination and sorting
type PageSort struct {
	Pagination
	Sort
}

// PageFilter combines pagination and filtering
type PageFilter struct {
	Pagination
	Filter
}

// SortFilter combines sorting and filtering
type SortFilter struct {
	Sort
	Filter
}

// PageSortFilter combines pagination, sorting and filtering
type PageSortFilter struct {
	Pagination
	Sort
	Filter
}
