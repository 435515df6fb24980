package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
)

// Kinds of validation failure, matched with errors.Is
var (
	ErrOutOfRange   = errors.New("value out of range")
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidOrder = errors.New("invalid sort order")
	ErrPairing      = errors.New("parameters must be provided together")
	ErrTypeMismatch = errors.New("type mismatch")
)

// ValidationError describes why query parameters were rejected
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ErrorCode maps the failure kind to its registered API error code
func (e *ValidationError) ErrorCode() apierrors.Code {
	switch e.Kind {
	case ErrOutOfRange:
		return apierrors.CodeValueOutOfRange
	case ErrInvalidField:
		return apierrors.CodeInvalidField
	case ErrInvalidOrder:
		return apierrors.CodeInvalidOrder
	case ErrPairing:
		return apierrors.CodeMissingPair
	case ErrTypeMismatch:
		return apierrors.CodeTypeMismatch
	default:
		return apierrors.CodeInvalidDataRequest
	}
}

func newError(kind error, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// quoteList renders values as ['a', 'b']
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
