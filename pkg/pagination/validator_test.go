package pagination

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/schema"
)

type item struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type econ struct {
	Impact   *string  `json:"impact" enum:"Low,Medium,High"`
	Previous *float64 `json:"previous"`
	Flag     *bool    `json:"flag"`
	Label    string   `json:"label"`
}

func validationKind(t *testing.T, err error) error {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Kind
}

func TestFor_RequiresRecordType(t *testing.T) {
	assert.PanicsWithError(t, "schema must be built from a record (struct) type: got int", func() {
		For[int]()
	})
	assert.Panics(t, func() { NewValidator(nil) })
}

func TestValidator_Pagination(t *testing.T) {
	v := For[item]()

	t.Run("defaults", func(t *testing.T) {
		p, err := v.Pagination(Query{})
		require.NoError(t, err)
		assert.Equal(t, Pagination{Page: 1, PageSize: 10}, p)
	})

	t.Run("custom values echo back", func(t *testing.T) {
		p, err := v.Pagination(Query{}.WithPage(2).WithPageSize(20))
		require.NoError(t, err)
		assert.Equal(t, Pagination{Page: 2, PageSize: 20}, p)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		for _, size := range []int{1, 100} {
			p, err := v.Pagination(Query{}.WithPageSize(size))
			require.NoError(t, err)
			assert.Equal(t, size, p.PageSize)
		}
	})

	tests := []struct {
		name    string
		query   Query
		kind    error
		message string
	}{
		{"page_size zero", Query{}.WithPageSize(0), ErrOutOfRange, "Invalid page_size: 0. Must be within [1, 100]"},
		{"page_size too large", Query{}.WithPageSize(101), ErrOutOfRange, "Invalid page_size: 101. Must be within [1, 100]"},
		{"page zero", Query{}.WithPage(0), ErrOutOfRange, "Invalid page: 0. Must be greater than or equal to 1"},
		{"page negative", Query{}.WithPage(-3), ErrOutOfRange, "Invalid page: -3. Must be greater than or equal to 1"},
		{"page not a number", QueryFromValues(url.Values{"page": {"abc"}}), ErrTypeMismatch, "Expected int for field page, got 'abc'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := v.Pagination(tt.query)
			require.Error(t, err)
			assert.Equal(t, Pagination{}, p)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidator_HeavyProfile(t *testing.T) {
	v := For[item](WithProfile(Heavy))

	p, err := v.Pagination(Query{})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, PageSize: 100}, p)

	p, err = v.Pagination(Query{}.WithPage(2).WithPageSize(200))
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 2, PageSize: 200}, p)

	for _, size := range []int{0, 1001} {
		_, err := v.Pagination(Query{}.WithPageSize(size))
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Contains(t, err.Error(), "[1, 1000]")
	}

	_, err = v.PageSortFilter(Query{}.WithPageSize(1001))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestValidator_Sort(t *testing.T) {
	v := For[item]()

	t.Run("invalid field lists schema fields in order", func(t *testing.T) {
		_, err := v.Sort(Query{}.WithSort("foo", "asc"))
		assert.Equal(t, ErrInvalidField, validationKind(t, err))
		assert.Equal(t, "Invalid field: 'foo'. Must be one of: ['name', 'value']", err.Error())
	})

	t.Run("field match is case-sensitive", func(t *testing.T) {
		_, err := v.Sort(Query{}.WithSort("Name", "asc"))
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("pairing", func(t *testing.T) {
		_, err := v.Sort(Query{}.WithSortBy("name"))
		assert.ErrorIs(t, err, ErrPairing)
		assert.Equal(t, "sort_order and sort_by must be provided together", err.Error())

		_, err = v.Sort(Query{}.WithSortOrder("asc"))
		assert.ErrorIs(t, err, ErrPairing)
	})

	t.Run("invalid order", func(t *testing.T) {
		for _, order := range []string{"invalid", "ASC", "Desc"} {
			_, err := v.Sort(Query{}.WithSort("name", order))
			assert.ErrorIs(t, err, ErrInvalidOrder)
		}
		_, err := v.Sort(Query{}.WithSort("name", "invalid_order"))
		assert.Equal(t, "Invalid order: 'invalid_order' — must be one of: ['asc', 'desc']", err.Error())
	})

	t.Run("invalid field reported before pairing", func(t *testing.T) {
		_, err := v.Sort(Query{}.WithSortBy("foo"))
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("valid", func(t *testing.T) {
		for _, order := range []Order{Asc, Desc} {
			s, err := v.Sort(Query{}.WithSort("name", string(order)))
			require.NoError(t, err)
			assert.Equal(t, Sort{By: "name", Order: order}, s)
			assert.True(t, s.IsSet())
		}
	})

	t.Run("absent", func(t *testing.T) {
		s, err := v.Sort(Query{})
		require.NoError(t, err)
		assert.False(t, s.IsSet())
		assert.Equal(t, Sort{}, s)
	})
}

func TestValidator_Filter(t *testing.T) {
	v := For[item]()

	t.Run("pairing", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilterBy("name"))
		assert.ErrorIs(t, err, ErrPairing)
		assert.Equal(t, "filter_by and filter_value must be provided together", err.Error())

		_, err = v.Filter(Query{}.WithFilterValue("x"))
		assert.ErrorIs(t, err, ErrPairing)
	})

	t.Run("invalid field", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilter("foo", "test"))
		assert.ErrorIs(t, err, ErrInvalidField)
		assert.Equal(t, "Invalid field: 'foo'. Must be one of: ['name', 'value']", err.Error())
	})

	t.Run("invalid field reported before pairing", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilterBy("foo"))
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("pairing reported before coercion", func(t *testing.T) {
		_, err := v.PageSortFilter(Query{}.WithSortBy("name").WithFilter("value", "not_a_number"))
		assert.ErrorIs(t, err, ErrPairing)
	})

	t.Run("valid", func(t *testing.T) {
		f, err := v.Filter(Query{}.WithFilter("name", "test"))
		require.NoError(t, err)
		assert.Equal(t, Filter{By: "name", Value: "test"}, f)
	})

	t.Run("absent", func(t *testing.T) {
		f, err := v.Filter(Query{})
		require.NoError(t, err)
		assert.False(t, f.IsSet())
		assert.Nil(t, f.Value)
	})
}

func TestValidator_FilterCoercion(t *testing.T) {
	v := For[econ]()

	tests := []struct {
		name  string
		field string
		raw   string
		want  any
	}{
		{"literal match", "impact", "High", "High"},
		{"literal none lowercase", "impact", "none", nil},
		{"literal none any case", "impact", "NoNe", nil},
		{"float", "previous", "1.23", 1.23},
		{"bool true", "flag", "true", true},
		{"bool one", "flag", "1", true},
		{"bool yes", "flag", "YES", true},
		{"bool false", "flag", "false", false},
		{"bool zero", "flag", "0", false},
		{"bool no", "flag", "no", false},
		{"string passthrough", "label", "Hello", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := v.Filter(Query{}.WithFilter(tt.field, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Value)
			assert.Equal(t, tt.field, f.By)
		})
	}

	t.Run("literal outside set fails", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilter("impact", "INVALID"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Equal(t, "Invalid value for field impact: 'INVALID'. Must be one of: ['Low', 'Medium', 'High', 'none']", err.Error())
	})

	t.Run("literal match is case-sensitive", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilter("impact", "high"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("bool garbage fails", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilter("flag", "maybe"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Equal(t, "Expected bool for field flag, got 'maybe'", err.Error())
	})

	t.Run("float garbage fails", func(t *testing.T) {
		_, err := v.Filter(Query{}.WithFilter("previous", "abc"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestValidator_EndToEndCoercion(t *testing.T) {
	v := For[item]()

	t.Run("integer field", func(t *testing.T) {
		p, err := v.PageSortFilter(Query{}.WithFilter("value", "42"))
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.Filter.Value)
	})

	t.Run("string field keeps text", func(t *testing.T) {
		p, err := v.PageSortFilter(Query{}.WithFilter("name", "1"))
		require.NoError(t, err)
		assert.Equal(t, "1", p.Filter.Value)

		p, err = v.PageSortFilter(Query{}.WithFilter("name", "test"))
		require.NoError(t, err)
		assert.Equal(t, "test", p.Filter.Value)
	})

	t.Run("integer field rejects text", func(t *testing.T) {
		_, err := v.PageSortFilter(Query{}.WithFilter("value", "not_a_number"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Equal(t, "Expected int for field value, got 'not_a_number'", err.Error())
	})
}

func TestValidator_Composed(t *testing.T) {
	v := For[item]()
	full := Query{}.WithPage(2).WithPageSize(20).WithSort("value", "desc").WithFilter("name", "test")

	t.Run("page sort filter", func(t *testing.T) {
		p, err := v.PageSortFilter(full)
		require.NoError(t, err)
		assert.Equal(t, Pagination{Page: 2, PageSize: 20}, p.Pagination)
		assert.Equal(t, Sort{By: "value", Order: Desc}, p.Sort)
		assert.Equal(t, Filter{By: "name", Value: "test"}, p.Filter)
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := v.PageSortFilter(Query{})
		require.NoError(t, err)
		assert.Equal(t, PageSortFilter{Pagination: Pagination{Page: 1, PageSize: 10}}, p)
	})

	t.Run("page sort ignores filter parameters", func(t *testing.T) {
		p, err := v.PageSort(Query{}.WithPage(2).WithSort("value", "desc").WithFilterBy("nope"))
		require.NoError(t, err)
		assert.Equal(t, PageSort{Pagination: Pagination{Page: 2, PageSize: 10}, Sort: Sort{By: "value", Order: Desc}}, p)
	})

	t.Run("page filter", func(t *testing.T) {
		p, err := v.PageFilter(full)
		require.NoError(t, err)
		assert.Equal(t, 20, p.PageSize)
		assert.Equal(t, "test", p.Filter.Value)

		_, err = v.PageFilter(Query{}.WithFilterBy("name"))
		assert.ErrorIs(t, err, ErrPairing)
	})

	t.Run("sort filter", func(t *testing.T) {
		p, err := v.SortFilter(full)
		require.NoError(t, err)
		assert.Equal(t, Sort{By: "value", Order: Desc}, p.Sort)
		assert.Equal(t, Filter{By: "name", Value: "test"}, p.Filter)

		_, err = v.SortFilter(Query{}.WithSortBy("name"))
		assert.ErrorIs(t, err, ErrPairing)
		_, err = v.SortFilter(Query{}.WithFilterBy("name"))
		assert.ErrorIs(t, err, ErrPairing)
	})

	t.Run("sort filter ignores page parameters", func(t *testing.T) {
		_, err := v.SortFilter(Query{}.WithPageSize(5000))
		assert.NoError(t, err)
	})

	t.Run("no partial result on failure", func(t *testing.T) {
		p, err := v.PageSortFilter(full.WithFilter("value", "x"))
		require.Error(t, err)
		assert.Equal(t, PageSortFilter{}, p)
	})
}

func TestValidator_PairingLaw(t *testing.T) {
	v := For[item]()
	by, order := "name", "asc"

	tests := []struct {
		name    string
		by      *string
		order   *string
		wantErr bool
	}{
		{"neither", nil, nil, false},
		{"both", &by, &order, false},
		{"only by", &by, nil, true},
		{"only order", nil, &order, true},
	}

	for _, tt := range tests {
		t.Run("sort "+tt.name, func(t *testing.T) {
			_, err := v.Sort(Query{SortBy: tt.by, SortOrder: tt.order})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPairing)
			} else {
				assert.NoError(t, err)
			}
		})
		t.Run("filter "+tt.name, func(t *testing.T) {
			_, err := v.Filter(Query{FilterBy: tt.by, FilterValue: tt.order})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPairing)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_ErrorCode(t *testing.T) {
	tests := []struct {
		kind error
		code apierrors.Code
	}{
		{ErrOutOfRange, apierrors.CodeValueOutOfRange},
		{ErrInvalidField, apierrors.CodeInvalidField},
		{ErrInvalidOrder, apierrors.CodeInvalidOrder},
		{ErrPairing, apierrors.CodeMissingPair},
		{ErrTypeMismatch, apierrors.CodeTypeMismatch},
		{errors.New("other"), apierrors.CodeInvalidDataRequest},
	}
	for _, tt := range tests {
		err := &ValidationError{Kind: tt.kind}
		assert.Equal(t, tt.code, err.ErrorCode())
		assert.Equal(t, tt.code, apierrors.CodeOf(err))
	}
}

func TestCoerce_Unsigned(t *testing.T) {
	tests := []struct {
		raw     string
		want    any
		wantErr string
	}{
		{"7", uint64(7), ""},
		{" 18446744073709551615 ", uint64(18446744073709551615), ""},
		{"-5", nil, "Expected uint for field count, got '-5'"},
		{"seven", nil, "Expected uint for field count, got 'seven'"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Coerce("count", schema.Uint(), tt.raw)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrTypeMismatch)
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	type counter struct {
		Count uint32 `json:"count"`
	}
	_, err := For[counter]().Filter(Query{}.WithFilter("count", "-5"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCoerce_UnknownTypePassesThrough(t *testing.T) {
	got, err := Coerce("x", schema.Unknown(), "some_value")
	require.NoError(t, err)
	assert.Equal(t, "some_value", got)

	got, err = Coerce("x", schema.Union(schema.Null(), schema.Int()), "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	_, err = Coerce("x", schema.Literal("a"), "none")
	assert.ErrorIs(t, err, ErrTypeMismatch, "none only maps to null on nullable literals")
}

func TestValidator_ExplicitSchema(t *testing.T) {
	s := schema.MustNew("Trade",
		schema.Field{Name: "symbol", Type: schema.String()},
		schema.Field{Name: "side", Type: schema.Literal("buy", "sell")},
		schema.Field{Name: "meta", Type: schema.Unknown()},
	)
	v := NewValidator(s)

	f, err := v.Filter(Query{}.WithFilter("side", "sell"))
	require.NoError(t, err)
	assert.Equal(t, "sell", f.Value)

	f, err = v.Filter(Query{}.WithFilter("meta", "raw"))
	require.NoError(t, err)
	assert.Equal(t, "raw", f.Value)

	assert.Same(t, s, v.Schema())
	assert.Equal(t, Standard, v.Profile())
}
