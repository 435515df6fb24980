package pagination

import (
	"net/url"
	"strconv"
)

// Query parameter names
const (
	ParamPage        = "page"
	ParamPageSize    = "page_size"
	ParamSortBy      = "sort_by"
	ParamSortOrder   = "sort_order"
	ParamFilterBy    = "filter_by"
	ParamFilterValue = "filter_value"
)

// Query holds raw, unvalidated parameters. A nil field was not supplied.
type Query struct {
	Page        *string
	PageSize    *string
	SortBy      *string
	SortOrder   *string
	FilterBy    *string
	FilterValue *string
}

// QueryFromValues reads the parameters from URL query values. An empty page or
// page_size counts as absent and takes the default. Every other parameter is
// absent only when missing, so ?sort_by= reaches field validation as an empty
// name and ?filter_value= filters by the empty string.
func QueryFromValues(values url.Values) Query {
	get := func(key string) *string {
		if _, ok := values[key]; !ok {
			return nil
		}
		v := values.Get(key)
		return &v
	}
	number := func(key string) *string {
		if values.Get(key) == "" {
			return nil
		}
		return get(key)
	}

	return Query{
		Page:        number(ParamPage),
		PageSize:    number(ParamPageSize),
		SortBy:      get(ParamSortBy),
		SortOrder:   get(ParamSortOrder),
		FilterBy:    get(ParamFilterBy),
		FilterValue: get(ParamFilterValue),
	}
}

// WithPage returns a copy of q with page set
func (q Query) WithPage(page int) Query {
	s := strconv.Itoa(page)
	q.Page = &s
	return q
}

// WithPageSize returns a copy of q with page_size set
func (q Query) WithPageSize(size int) Query {
	s := strconv.Itoa(size)
	q.PageSize = &s
	return q
}

// WithSort returns a copy of q with sort_by and sort_order set
func (q Query) WithSort(by, order string) Query {
	return q.WithSortBy(by).WithSortOrder(order)
}

// WithSortBy returns a copy of q with sort_by set
func (q Query) WithSortBy(by string) Query {
	q.SortBy = &by
	return q
}

// WithSortOrder returns a copy of q with sort_order set
func (q Query) WithSortOrder(order string) Query {
	q.SortOrder = &order
	return q
}

// WithFilter returns a copy of q with filter_by and filter_value set
func (q Query) WithFilter(by, value string) Query {
	return q.WithFilterBy(by).WithFilterValue(value)
}

// WithFilterBy returns a copy of q with filter_by set
func (q Query) WithFilterBy(by string) Query {
	q.FilterBy = &by
	return q
}

// WithFilterValue returns a copy of q with filter_value set
func (q Query) WithFilterValue(value string) Query {
	q.FilterValue = &value
	return q
}

// Values renders the supplied parameters as URL query values
func (q Query) Values() url.Values {
	values := url.Values{}
	set := func(key string, v *string) {
		if v != nil {
			values.Set(key, *v)
		}
	}
	set(ParamPage, q.Page)
	set(ParamPageSize, q.PageSize)
	set(ParamSortBy, q.SortBy)
	set(ParamSortOrder, q.SortOrder)
	set(ParamFilterBy, q.FilterBy)
	set(ParamFilterValue, q.FilterValue)
	return values
}
