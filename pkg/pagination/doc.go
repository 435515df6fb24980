// Package pagination validates page, sort and filter query parameters for list endpoints.
//
// # Overview
//
// A Validator is bound to the schema of the records an endpoint lists. It checks that
// sort and filter fields exist, that paired parameters arrive together, that page sizes
// stay inside the profile's bound, and coerces the filter value to the declared type of
// its field. Results are either fully valid or an error; nothing partial is returned.
//
// # Usage
//
//	type Item struct {
//		Name  string `json:"name"`
//		Value int    `json:"value"`
//	}
//
//	var items = pagination.For[Item]()                                 // page size 10, max 100
//	var bulk = pagination.For[Item](pagination.WithProfile(pagination.Heavy)) // 100, max 1000
//
//	params, err := items.PageSortFilter(pagination.QueryFromValues(r.URL.Query()))
//	if err != nil {
//		// *ValidationError, mapped to an apierrors code by ErrorCode()
//	}
//	// ?filter_by=value&filter_value=42 -> params.Filter.Value == int64(42)
//
// Each concern can be validated alone (Pagination, Sort, Filter) or combined
// (PageSort, PageFilter, SortFilter, PageSortFilter). Combined records carry the union of
// their components' rules and nothing more.
//
// # Check Order
//
//  1. page and page_size bounds
//  2. sort_by / filter_by exist in the schema, sort_order is asc or desc
//  3. sort_by with sort_order, filter_by with filter_value
//  4. filter_value coercion
//
// # Responses
//
//	resp := pagination.NewPaginatedResponse(rows, total, params.Pagination)
//	// {"items": [...], "total": 95, "page": 2, "page_size": 10,
//	//  "next_page": 3, "prev_page": 1, "last_page": 10}
//
// # Related Packages
//
//   - pkg/schema: target schemas
//   - pkg/httputil: reads parameters from requests and writes errors
package pagination
