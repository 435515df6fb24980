package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/observability"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a successful creation response (201 Created) with JSON data
func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a successful response with no content (204 No Content)
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorWriter renders errors as registry payloads:
//
//	{"message": "...", "code": "invalid_field", "type": "user_error",
//	 "level": "error", "status_code": 400}
type ErrorWriter struct {
	registry *apierrors.Registry
}

// NewErrorWriter creates an error writer. A nil registry uses apierrors.Default().
func NewErrorWriter(registry *apierrors.Registry) *ErrorWriter {
	if registry == nil {
		registry = apierrors.Default()
	}
	return &ErrorWriter{registry: registry}
}

// Registry returns the registry errors are resolved against
func (ew *ErrorWriter) Registry() *apierrors.Registry {
	return ew.registry
}

// Write resolves err, logs it with the request logger and writes the payload.
// Headers attached to an *apierrors.Error are copied to the response.
func (ew *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	detail := ew.registry.Resolve(err, apierrors.ProtocolHTTP)

	logger := observability.FromContext(r.Context()).
		WithError(err).
		WithFields(map[string]any{
			"code":        detail.Code,
			"status_code": detail.StatusCode,
			"method":      r.Method,
			"path":        r.URL.Path,
		})
	if detail.StatusCode >= http.StatusInternalServerError {
		logger.Error("request failed")
	} else {
		logger.Info("request rejected")
	}

	if apiErr, ok := apierrors.As(err); ok {
		for k, v := range apiErr.Headers {
			w.Header().Set(k, v)
		}
	}
	WriteJSON(w, detail.StatusCode, detail)
}

// WriteCode writes the payload for a registered code without an error value
func (ew *ErrorWriter) WriteCode(w http.ResponseWriter, r *http.Request, code apierrors.Code, message string) {
	ew.Write(w, r, apierrors.New(code, message))
}

var defaultErrorWriter = NewErrorWriter(nil)

// WriteError writes err using the built-in registry
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	defaultErrorWriter.Write(w, r, err)
}

// WriteBadRequest writes an invalid_data_request error (400)
func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	defaultErrorWriter.WriteCode(w, r, apierrors.CodeInvalidDataRequest, message)
}

// WriteNotFound writes an object_not_found error (404)
func WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	defaultErrorWriter.WriteCode(w, r, apierrors.CodeObjectNotFound, message)
}

// WriteUnauthorized writes an unauthorized error (401)
func WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	defaultErrorWriter.WriteCode(w, r, apierrors.CodeUnauthorized, message)
}

// WriteForbidden writes a forbidden error (403)
func WriteForbidden(w http.ResponseWriter, r *http.Request, message string) {
	defaultErrorWriter.WriteCode(w, r, apierrors.CodeForbidden, message)
}

// WriteJSONOrError writes JSON, or an invalid_data_response error when data cannot be encoded
func WriteJSONOrError(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		WriteError(w, r, apierrors.Wrap(apierrors.CodeInvalidDataResponse, err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
