package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Code is the machine-readable identifier of an error
type Code string

const (
	CodeUnknown             Code = "unknown_error"
	CodeInvalidDataRequest  Code = "invalid_data_request"
	CodeInvalidDataResponse Code = "invalid_data_response"
	CodeObjectAlreadyExists Code = "object_already_exists"
	CodeObjectNotFound      Code = "object_not_found"
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"

	// Query parameter validation
	CodeValueOutOfRange Code = "value_out_of_range"
	CodeInvalidField    Code = "invalid_field"
	CodeInvalidOrder    Code = "invalid_sort_order"
	CodeMissingPair     Code = "missing_parameter_pair"
	CodeTypeMismatch    Code = "type_mismatch"
)

// Type classifies who caused an error
type Type string

const (
	TypeUserError     Type = "user_error"
	TypeExchangeError Type = "exchange_error"
	TypeServerError   Type = "server_error"
	TypeNoError       Type = "no_error"
)

// Level is the severity presented to clients
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

// WebSocket close codes used by the built-in descriptors (RFC 6455)
const (
	WSPolicyViolation = 1008
	WSInvalidPayload  = 1007
	WSInternalError   = 1011
)

// Descriptor describes how an error code is presented over HTTP and WebSocket
type Descriptor struct {
	Identifier    Code
	Type          Type
	Level         Level
	HTTPCode      int
	WebSocketCode int
}

// ErrDuplicateCode is returned when a registry would hold two descriptors for one code
var ErrDuplicateCode = errors.New("duplicate error code")

// Registry is an immutable mapping from error code to descriptor.
// Build it once at startup and share it.
type Registry struct {
	descriptors map[Code]Descriptor
}

// NewRegistry creates a registry from descriptors
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{descriptors: make(map[Code]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if d.Identifier == "" {
			return nil, fmt.Errorf("descriptor without identifier")
		}
		if _, exists := r.descriptors[d.Identifier]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, d.Identifier)
		}
		r.descriptors[d.Identifier] = d
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error
func MustRegistry(descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Extend returns a new registry holding the receiver's descriptors plus the given ones.
// The receiver is not modified.
func (r *Registry) Extend(descriptors ...Descriptor) (*Registry, error) {
	all := make([]Descriptor, 0, len(r.descriptors)+len(descriptors))
	for _, d := range r.descriptors {
		all = append(all, d)
	}
	return NewRegistry(append(all, descriptors...)...)
}

// Lookup returns the descriptor for a code
func (r *Registry) Lookup(code Code) (Descriptor, bool) {
	d, ok := r.descriptors[code]
	return d, ok
}

// Codes returns all registered codes, sorted
func (r *Registry) Codes() []Code {
	codes := make([]Code, 0, len(r.descriptors))
	for c := range r.descriptors {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// All returns a copy of the registered descriptors
func (r *Registry) All() map[Code]Descriptor {
	out := make(map[Code]Descriptor, len(r.descriptors))
	for c, d := range r.descriptors {
		out[c] = d
	}
	return out
}

// unknownDescriptor is used when a code is not registered
var unknownDescriptor = Descriptor{
	Identifier:    CodeUnknown,
	Type:          TypeServerError,
	Level:         LevelError,
	HTTPCode:      http.StatusInternalServerError,
	WebSocketCode: WSInternalError,
}

func requestError(code Code) Descriptor {
	return Descriptor{
		Identifier:    code,
		Type:          TypeUserError,
		Level:         LevelError,
		HTTPCode:      http.StatusBadRequest,
		WebSocketCode: WSInvalidPayload,
	}
}

// Builtin returns the descriptors every service shares
func Builtin() []Descriptor {
	return []Descriptor{
		unknownDescriptor,
		requestError(CodeInvalidDataRequest),
		requestError(CodeInvalidDataResponse),
		{CodeObjectAlreadyExists, TypeUserError, LevelError, http.StatusConflict, WSPolicyViolation},
		{CodeObjectNotFound, TypeUserError, LevelError, http.StatusNotFound, WSPolicyViolation},
		{CodeUnauthorized, TypeUserError, LevelError, http.StatusUnauthorized, WSPolicyViolation},
		{CodeForbidden, TypeUserError, LevelError, http.StatusForbidden, WSPolicyViolation},
		requestError(CodeValueOutOfRange),
		requestError(CodeInvalidField),
		requestError(CodeInvalidOrder),
		requestError(CodeMissingPair),
		requestError(CodeTypeMismatch),
	}
}

var defaultRegistry = MustRegistry(Builtin()...)

// Default returns the registry of built-in descriptors
func Default() *Registry {
	return defaultRegistry
}
