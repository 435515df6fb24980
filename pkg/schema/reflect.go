package schema

import (
	"fmt"
	"reflect"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the number of reflected schemas kept in memory
const cacheSize = 512

var cache *lru.Cache[reflect.Type, *Schema]

func init() {
	c, err := lru.New[reflect.Type, *Schema](cacheSize)
	if err != nil {
		panic(fmt.Sprintf("schema: create cache: %v", err))
	}
	cache = c
}

// LiteralSet is implemented by named string types with a closed set of values.
// Fields of such types reflect to a KindLiteral type.
type LiteralSet interface {
	Literals() []string
}

var literalSetType = reflect.TypeOf((*LiteralSet)(nil)).Elem()

// Of returns the schema of the struct type T
func Of[T any]() (*Schema, error) {
	return FromType(reflect.TypeFor[T]())
}

// MustOf returns the schema of the struct type T and panics if T is not a struct
func MustOf[T any]() *Schema {
	s, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// FromType reflects a schema from a struct type (or pointer to one).
// Results are cached per type.
func FromType(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: got <nil>", ErrNotRecord)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotRecord, t)
	}

	if s, ok := cache.Get(t); ok {
		return s, nil
	}

	s, err := New(t.Name(), collectFields(t)...)
	if err != nil {
		return nil, err
	}
	cache.Add(t, s)
	return s, nil
}

func collectFields(t reflect.Type) []Field {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, skip := jsonName(sf)
		if skip {
			continue
		}

		if sf.Anonymous && name == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				fields = append(fields, collectFields(et)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		fields = append(fields, Field{Name: name, Type: typeOf(sf.Type, sf.Tag.Get("enum"))})
	}
	return fields
}

// jsonName returns the name from the json tag, or skip for `json:"-"`
func jsonName(sf reflect.StructField) (name string, skip bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	if tag == "-" {
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	return name, false
}

func typeOf(rt reflect.Type, enum string) Type {
	nullable := false
	for rt.Kind() == reflect.Pointer {
		nullable = true
		rt = rt.Elem()
	}

	var t Type
	switch {
	case enum != "":
		values := strings.Split(enum, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		t = Literal(values...)
	case rt.Kind() == reflect.String && rt.Implements(literalSetType):
		t = Literal(reflect.Zero(rt).Interface().(LiteralSet).Literals()...)
	default:
		t = Type{Kind: kindOf(rt.Kind())}
	}

	t.Nullable = nullable
	return t
}

func kindOf(k reflect.Kind) Kind {
	switch k {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	default:
		return KindUnknown
	}
}
