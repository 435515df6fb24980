package pagination

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, LastPage(0, 10))
	assert.Equal(t, 10, LastPage(100, 10))
	assert.Equal(t, 11, LastPage(101, 10))
	assert.Equal(t, 1, LastPage(5, 10))
	assert.Equal(t, 1, LastPage(5, 0))
}

func TestNextPage(t *testing.T) {
	assert.Equal(t, intPtr(6), NextPage(100, 10, 5))
	assert.Nil(t, NextPage(100, 10, 10))
	assert.Nil(t, NextPage(100, 10, 11))
	assert.Nil(t, NextPage(0, 10, 1))
}

func TestPrevPage(t *testing.T) {
	assert.Equal(t, intPtr(4), PrevPage(5))
	assert.Nil(t, PrevPage(1))
	assert.Nil(t, PrevPage(0))
	assert.Nil(t, PrevPage(-1))
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 95, Pagination{Page: 2, PageSize: 10})

	assert.Equal(t, []string{"a", "b"}, resp.Items)
	assert.Equal(t, 95, resp.Total)
	assert.Equal(t, intPtr(3), resp.NextPage)
	assert.Equal(t, intPtr(1), resp.PrevPage)
	assert.Equal(t, 10, resp.LastPage)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"items": ["a", "b"],
		"total": 95,
		"page": 2,
		"page_size": 10,
		"next_page": 3,
		"prev_page": 1,
		"last_page": 10
	}`, string(raw))
}

func TestNewPaginatedResponse_Empty(t *testing.T) {
	resp := NewPaginatedResponse[int](nil, 0, Pagination{Page: 1, PageSize: 10})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [], "total": 0, "page": 1, "page_size": 10,
		"next_page": null, "prev_page": null, "last_page": 1}`, string(raw))
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	resp := Paginate(all, Pagination{Page: 2, PageSize: 3})
	assert.Equal(t, []int{4, 5, 6}, resp.Items)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, 3, resp.LastPage)

	resp = Paginate(all, Pagination{Page: 3, PageSize: 3})
	assert.Equal(t, []int{7}, resp.Items)
	assert.Nil(t, resp.NextPage)

	resp = Paginate(all, Pagination{Page: 9, PageSize: 3})
	assert.Empty(t, resp.Items)
	assert.Equal(t, intPtr(8), resp.PrevPage)
}

func TestPaginate_PageBeyondIntRange(t *testing.T) {
	v := For[item]()
	p, err := v.Pagination(Query{}.WithPage(1_000_000_000_000_000_000))
	require.NoError(t, err)

	var resp PaginatedResponse[int]
	require.NotPanics(t, func() {
		resp = Paginate([]int{1, 2, 3}, p)
	})
	assert.Empty(t, resp.Items)
	assert.Equal(t, 3, resp.Total)
	assert.Nil(t, resp.NextPage)
}

func TestPagination_OffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, PageSize: 100}.Offset())
	assert.Equal(t, math.MaxInt, Pagination{Page: 1_000_000_000_000_000_000, PageSize: 10}.Offset())
	assert.Equal(t, 0, Pagination{Page: 5, PageSize: 0}.Offset())

	resp := Paginate([]int{1, 2, 3}, Pagination{Page: 1, PageSize: math.MaxInt})
	assert.Equal(t, []int{1, 2, 3}, resp.Items)
}

func TestFilter_JSONKeepsNullValue(t *testing.T) {
	body, err := json.Marshal(PageFilter{
		Pagination: Pagination{Page: 1, PageSize: 10},
		Filter:     Filter{By: "impact", Value: nil},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1,"page_size":10,"filter_by":"impact","filter_value":null}`, string(body))
}

func TestQueryFromValues_EmptyValues(t *testing.T) {
	q := QueryFromValues(url.Values{
		"page":         {""},
		"sort_by":      {""},
		"sort_order":   {"asc"},
		"filter_by":    {"name"},
		"filter_value": {""},
	})

	assert.Nil(t, q.Page, "empty page takes the default")
	require.NotNil(t, q.SortBy)
	assert.Equal(t, "", *q.SortBy)
	require.NotNil(t, q.FilterValue)
	assert.Equal(t, "", *q.FilterValue)

	v := For[item]()
	_, err := v.Sort(q)
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.EqualError(t, err, "Invalid field: ''. Must be one of: ['name', 'value']")

	f, err := v.Filter(q)
	require.NoError(t, err)
	assert.Equal(t, Filter{By: "name", Value: ""}, f)
}

func TestPagination_OffsetLimit(t *testing.T) {
	p := Pagination{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 0, Pagination{}.Offset())
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{
		"page":         {"2"},
		"page_size":    {""},
		"sort_by":      {"name"},
		"sort_order":   {"asc"},
		"filter_value": {"x"},
	})

	require.NotNil(t, q.Page)
	assert.Equal(t, "2", *q.Page)
	assert.Nil(t, q.PageSize, "empty values are absent")
	assert.Equal(t, "name", *q.SortBy)
	assert.Nil(t, q.FilterBy)
	assert.Equal(t, "x", *q.FilterValue)

	assert.Equal(t, url.Values{
		"page":         {"2"},
		"sort_by":      {"name"},
		"sort_order":   {"asc"},
		"filter_value": {"x"},
	}, q.Values())
}
