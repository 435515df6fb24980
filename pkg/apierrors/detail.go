package apierrors

import "errors"

// Protocol selects which status code a Detail carries
type Protocol string

const (
	ProtocolHTTP      Protocol = "http"
	ProtocolWebSocket Protocol = "websocket"
)

// Detail is the error payload returned to clients
type Detail struct {
	Message    string `json:"message,omitempty"`
	Code       Code   `json:"code"`
	Type       Type   `json:"type"`
	Level      Level  `json:"level"`
	StatusCode int    `json:"status_code"`
	Details    any    `json:"details,omitempty"`
}

// NewDetail builds the payload for a descriptor
func NewDetail(d Descriptor, protocol Protocol, message string, details any) Detail {
	status := d.HTTPCode
	if protocol == ProtocolWebSocket {
		status = d.WebSocketCode
	}
	return Detail{
		Message:    message,
		Code:       d.Identifier,
		Type:       d.Type,
		Level:      d.Level,
		StatusCode: status,
		Details:    details,
	}
}

// Resolve maps any error to a client payload using the registry.
// Errors without a registered code become unknown_error.
func (r *Registry) Resolve(err error, protocol Protocol) Detail {
	if err == nil {
		return Detail{}
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		d := r.descriptorFor(apiErr.Code)
		msg := apiErr.Message
		if msg == "" && apiErr.Err != nil {
			msg = apiErr.Err.Error()
		}
		return NewDetail(d, protocol, msg, apiErr.Details)
	}

	var coder Coder
	if errors.As(err, &coder) {
		return NewDetail(r.descriptorFor(coder.ErrorCode()), protocol, err.Error(), nil)
	}

	return NewDetail(r.descriptorFor(CodeUnknown), protocol, err.Error(), nil)
}

// Build creates the payload for a registered code
func (r *Registry) Build(code Code, protocol Protocol, message string, details any) Detail {
	return NewDetail(r.descriptorFor(code), protocol, message, details)
}

func (r *Registry) descriptorFor(code Code) Descriptor {
	if d, ok := r.descriptors[code]; ok {
		return d
	}
	if d, ok := r.descriptors[CodeUnknown]; ok {
		return d
	}
	return unknownDescriptor
}
