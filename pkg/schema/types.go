package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the declared scalar type of a field
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindLiteral
	KindUnion
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindLiteral:
		return "literal"
	case KindUnion:
		return "union"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Type is the declared type of a field
type Type struct {
	Kind     Kind
	Nullable bool
	// Literals holds the allowed values of a KindLiteral type
	Literals []string
	// Members holds the alternatives of a KindUnion type
	Members []Type
}

// String returns the plain string type
func String() Type { return Type{Kind: KindString} }

// Int returns the integer type
func Int() Type { return Type{Kind: KindInt} }

// Uint returns the unsigned integer type
func Uint() Type { return Type{Kind: KindUint} }

// Float returns the floating point type
func Float() Type { return Type{Kind: KindFloat} }

// Bool returns the boolean type
func Bool() Type { return Type{Kind: KindBool} }

// Null returns the null type, only meaningful as a union member
func Null() Type { return Type{Kind: KindNull} }

// Unknown returns a type the validator does not coerce
func Unknown() Type { return Type{Kind: KindUnknown} }

// Literal returns a closed enumeration of string values
func Literal(values ...string) Type {
	return Type{Kind: KindLiteral, Literals: append([]string(nil), values...)}
}

// Optional marks t as nullable
func Optional(t Type) Type {
	t.Nullable = true
	return t
}

// Union returns a type that accepts any of the given members
func Union(members ...Type) Type {
	return Type{Kind: KindUnion, Members: append([]Type(nil), members...)}
}

// Resolve unwraps unions to their first non-null member. Nullability of the union
// (an explicit Null member or the Nullable flag) carries over to the result.
// A union without non-null members resolves to an unknown type.
func (t Type) Resolve() Type {
	if t.Kind != KindUnion {
		return t
	}

	nullable := t.Nullable
	for _, m := range t.Members {
		if m.Kind == KindNull {
			nullable = true
		}
	}

	for _, m := range t.Members {
		if m.Kind == KindNull {
			continue
		}
		r := m.Resolve()
		r.Nullable = r.Nullable || nullable
		return r
	}
	return Type{Kind: KindUnknown, Nullable: nullable}
}

func (t Type) String() string {
	var s string
	switch t.Kind {
	case KindLiteral:
		quoted := make([]string, len(t.Literals))
		for i, l := range t.Literals {
			quoted[i] = "'" + l + "'"
		}
		s = "literal[" + strings.Join(quoted, ", ") + "]"
	case KindUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		s = strings.Join(parts, " | ")
	default:
		s = t.Kind.String()
	}

	if t.Nullable && t.Kind != KindNull {
		return fmt.Sprintf("optional[%s]", s)
	}
	return s
}
