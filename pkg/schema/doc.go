// Package schema describes the records that list endpoints page, sort and filter over.
//
// # Overview
//
// A Schema is an ordered mapping from field name to declared scalar type. Validators use it
// to check that sort and filter fields exist and to coerce raw filter text into the field's
// declared type. Schemas are immutable once built and safe for concurrent use.
//
// # Building a Schema
//
// Explicitly:
//
//	s := schema.MustNew("Item",
//		schema.Field{Name: "name", Type: schema.String()},
//		schema.Field{Name: "value", Type: schema.Int()},
//	)
//
// From a struct (json tags name the fields, pointers are nullable, the enum tag declares a
// closed set of string literals):
//
//	type Econ struct {
//		Impact   *string  `json:"impact" enum:"Low,Medium,High"`
//		Previous *float64 `json:"previous"`
//		Flag     *bool    `json:"flag"`
//		Label    string   `json:"label"`
//	}
//
//	s := schema.MustOf[Econ]()
//
// Reflecting over a type that is not a struct fails with ErrNotRecord. MustOf panics with it,
// since that is a programming error and never depends on a request.
//
// # Related Packages
//
//   - pkg/pagination: validates page, sort and filter parameters against a Schema
package schema
