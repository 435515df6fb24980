package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRecord is returned when a schema is requested for a type that is not a struct
	ErrNotRecord = errors.New("schema must be built from a record (struct) type")

	// ErrDuplicateField is returned when two fields share a name
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrEmptyFieldName is returned for a field without a name
	ErrEmptyFieldName = errors.New("field name cannot be empty")
)

// Field is a named, typed member of a Schema
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered set of fields describing a record type
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// New creates a schema from fields in declaration order
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %s: %w", name, ErrEmptyFieldName)
		}
		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("schema %s: %w: %s", name, ErrDuplicateField, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	return s, nil
}

// MustNew is like New but panics on error
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record name
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of fields
func (s *Schema) Len() int {
	return len(s.fields)
}

// Names returns the field names in declaration order
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the fields in declaration order
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Has reports whether the schema declares a field with the exact name
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Lookup returns the declared type of a field
func (s *Schema) Lookup(name string) (Type, bool) {
	i, ok := s.index[name]
	if !ok {
		return Type{}, false
	}
	return s.fields[i].Type, true
}
