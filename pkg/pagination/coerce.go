package pagination

import (
	"slices"
	"strconv"
	"strings"

	"github.com/crypticorn-ai/apiutils/pkg/schema"
)

// NoneText is the filter value that selects null on nullable literal fields
const NoneText = "none"

var (
	truthy = []string{"true", "1", "yes", "y", "on"}
	falsy  = []string{"false", "0", "no", "n", "off"}
)

// coerce converts raw filter text to the declared type of field
func (v *Validator) coerce(field, raw string) (any, error) {
	declared, ok := v.schema.Lookup(field)
	if !ok {
		return raw, nil
	}
	return Coerce(field, declared, raw)
}

// Coerce converts raw text to the type t. Unions are unwrapped to their first
// non-null member; unknown types pass the text through unchanged.
func Coerce(field string, t schema.Type, raw string) (any, error) {
	t = t.Resolve()

	switch t.Kind {
	case schema.KindBool:
		lower := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case slices.Contains(truthy, lower):
			return true, nil
		case slices.Contains(falsy, lower):
			return false, nil
		}
		return nil, mismatch(field, t, raw)

	case schema.KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, mismatch(field, t, raw)
		}
		return n, nil

	case schema.KindUint:
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, mismatch(field, t, raw)
		}
		return n, nil

	case schema.KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, mismatch(field, t, raw)
		}
		return f, nil

	case schema.KindLiteral:
		if slices.Contains(t.Literals, raw) {
			return raw, nil
		}
		if t.Nullable && strings.EqualFold(raw, NoneText) {
			return nil, nil
		}
		allowed := t.Literals
		if t.Nullable {
			allowed = append(slices.Clone(allowed), NoneText)
		}
		return nil, newError(ErrTypeMismatch, field,
			"Invalid value for field %s: '%s'. Must be one of: %s", field, raw, quoteList(allowed))

	default:
		return raw, nil
	}
}

func mismatch(field string, t schema.Type, raw string) error {
	return newError(ErrTypeMismatch, field, "Expected %s for field %s, got '%s'", t.Kind, field, raw)
}
