package pagination

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/crypticorn-ai/apiutils/pkg/schema"
)

var validate = validator.New()

// Validator checks query parameters against a target schema.
// It holds no per-request state and is safe for concurrent use.
type Validator struct {
	schema  *schema.Schema
	profile Profile
}

// Option configures a Validator
type Option func(*Validator)

// WithProfile selects the page size profile (Standard by default)
func WithProfile(p Profile) Option {
	return func(v *Validator) {
		v.profile = p
	}
}

// NewValidator creates a validator bound to a schema. A nil schema is a programming
// error and panics.
func NewValidator(s *schema.Schema, opts ...Option) *Validator {
	if s == nil {
		panic("pagination: validator requires a schema")
	}
	v := &Validator{schema: s, profile: Standard}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// For creates a validator bound to the schema of struct type T.
// It panics with schema.ErrNotRecord when T is not a struct.
func For[T any](opts ...Option) *Validator {
	return NewValidator(schema.MustOf[T](), opts...)
}

// Schema returns the target schema
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Profile returns the page size profile
func (v *Validator) Profile() Profile {
	return v.profile
}

type concern uint8

const (
	concernPage concern = 1 << iota
	concernSort
	concernFilter
)

// Pagination validates page and page_size
func (v *Validator) Pagination(q Query) (Pagination, error) {
	r, err := v.validate(q, concernPage)
	return r.Pagination, err
}

// Sort validates sort_by and sort_order
func (v *Validator) Sort(q Query) (Sort, error) {
	r, err := v.validate(q, concernSort)
	return r.Sort, err
}

// Filter validates filter_by and filter_value and coerces the value
func (v *Validator) Filter(q Query) (Filter, error) {
	r, err := v.validate(q, concernFilter)
	return r.Filter, err
}

// PageSort validates pagination and sorting
func (v *Validator) PageSort(q Query) (PageSort, error) {
	r, err := v.validate(q, concernPage|concernSort)
	return PageSort{Pagination: r.Pagination, Sort: r.Sort}, err
}

// PageFilter validates pagination and filtering
func (v *Validator) PageFilter(q Query) (PageFilter, error) {
	r, err := v.validate(q, concernPage|concernFilter)
	return PageFilter{Pagination: r.Pagination, Filter: r.Filter}, err
}

// SortFilter validates sorting and filtering
func (v *Validator) SortFilter(q Query) (SortFilter, error) {
	r, err := v.validate(q, concernSort|concernFilter)
	return SortFilter{Sort: r.Sort, Filter: r.Filter}, err
}

// PageSortFilter validates pagination, sorting and filtering
func (v *Validator) PageSortFilter(q Query) (PageSortFilter, error) {
	return v.validate(q, concernPage|concernSort|concernFilter)
}

// validate runs the checks of the requested concerns in phases: page bounds, field
// references, pairing, coercion. The first failure is returned with a zero result.
func (v *Validator) validate(q Query, c concern) (PageSortFilter, error) {
	var out PageSortFilter

	if c&concernPage != 0 {
		p, err := v.pagination(q)
		if err != nil {
			return PageSortFilter{}, err
		}
		out.Pagination = p
	}

	if c&concernSort != 0 {
		if err := v.checkField(ParamSortBy, q.SortBy); err != nil {
			return PageSortFilter{}, err
		}
		if q.SortOrder != nil && !Order(*q.SortOrder).valid() {
			return PageSortFilter{}, newError(ErrInvalidOrder, ParamSortOrder,
				"Invalid order: '%s' — must be one of: %s", *q.SortOrder, quoteList([]string{string(Asc), string(Desc)}))
		}
	}
	if c&concernFilter != 0 {
		if err := v.checkField(ParamFilterBy, q.FilterBy); err != nil {
			return PageSortFilter{}, err
		}
	}

	if c&concernSort != 0 && (q.SortBy == nil) != (q.SortOrder == nil) {
		return PageSortFilter{}, newError(ErrPairing, ParamSortBy,
			"sort_order and sort_by must be provided together")
	}
	if c&concernFilter != 0 && (q.FilterBy == nil) != (q.FilterValue == nil) {
		return PageSortFilter{}, newError(ErrPairing, ParamFilterBy,
			"filter_by and filter_value must be provided together")
	}

	if c&concernSort != 0 && q.SortBy != nil {
		out.Sort = Sort{By: *q.SortBy, Order: Order(*q.SortOrder)}
	}
	if c&concernFilter != 0 && q.FilterBy != nil {
		value, err := v.coerce(*q.FilterBy, *q.FilterValue)
		if err != nil {
			return PageSortFilter{}, err
		}
		out.Filter = Filter{By: *q.FilterBy, Value: value}
	}

	return out, nil
}

func (v *Validator) pagination(q Query) (Pagination, error) {
	page, err := parseInt(ParamPage, q.Page, 1)
	if err != nil {
		return Pagination{}, err
	}
	size, err := parseInt(ParamPageSize, q.PageSize, v.profile.DefaultPageSize)
	if err != nil {
		return Pagination{}, err
	}

	if err := validate.Var(page, "min=1"); err != nil {
		return Pagination{}, newError(ErrOutOfRange, ParamPage,
			"Invalid page: %d. Must be greater than or equal to 1", page)
	}
	if err := validate.Var(size, v.profile.sizeTag()); err != nil {
		return Pagination{}, newError(ErrOutOfRange, ParamPageSize,
			"Invalid page_size: %d. Must be within %s", size, v.profile.Bound())
	}

	return Pagination{Page: page, PageSize: size}, nil
}

func (v *Validator) checkField(param string, name *string) error {
	if name == nil || v.schema.Has(*name) {
		return nil
	}
	return newError(ErrInvalidField, param,
		"Invalid field: '%s'. Must be one of: %s", *name, quoteList(v.schema.Names()))
}

func parseInt(param string, raw *string, def int) (int, error) {
	if raw == nil {
		return def, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return 0, newError(ErrTypeMismatch, param, "Expected int for field %s, got '%s'", param, *raw)
	}
	return n, nil
}
