package apierrors

import (
	"errors"
	"fmt"
)

// Error is an error carrying a registered code and client-facing context
type Error struct {
	Code    Code
	Message string
	Details any
	Headers map[string]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the registered code
func (e *Error) ErrorCode() Code {
	return e.Code
}

// New creates an error with a code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a code and formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code to an underlying error
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// WithDetails returns a copy of e carrying details
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// WithHeaders returns a copy of e carrying response headers
func (e *Error) WithHeaders(headers map[string]string) *Error {
	c := *e
	c.Headers = headers
	return &c
}

// Coder is implemented by errors that know their registered code
type Coder interface {
	ErrorCode() Code
}

// CodeOf returns the code attached to err, or CodeUnknown
func CodeOf(err error) Code {
	var c Coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return CodeUnknown
}

// As extracts an *Error from an error chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
