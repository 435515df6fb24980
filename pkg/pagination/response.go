package pagination

// PaginatedResponse wraps one page of items. NextPage, PrevPage and LastPage are
// derived from Total, PageSize and Page when the response is built.
type PaginatedResponse[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	NextPage *int `json:"next_page"`
	PrevPage *int `json:"prev_page"`
	LastPage int  `json:"last_page"`
}

// NewPaginatedResponse builds a response for a page of items out of total
func NewPaginatedResponse[T any](items []T, total int, p Pagination) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		NextPage: NextPage(total, p.PageSize, p.Page),
		PrevPage: PrevPage(p.Page),
		LastPage: LastPage(total, p.PageSize),
	}
}

// Paginate slices an in-memory collection to the requested page
func Paginate[T any](all []T, p Pagination) PaginatedResponse[T] {
	start := min(p.Offset(), len(all))
	end := start + min(max(p.PageSize, 0), len(all)-start)
	return NewPaginatedResponse(all[start:end], len(all), p)
}

// LastPage returns max(1, ceil(total / pageSize))
func LastPage(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return max(1, (total+pageSize-1)/pageSize)
}

// NextPage returns page+1, or nil when page is the last page or beyond
func NextPage(total, pageSize, page int) *int {
	if page < LastPage(total, pageSize) {
		next := page + 1
		return &next
	}
	return nil
}

// PrevPage returns page-1, or nil on the first page (or an invalid page)
func PrevPage(page int) *int {
	if page > 1 {
		prev := page - 1
		return &prev
	}
	return nil
}
