package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/pagination"
)

var validate = validator.New()

// ParseJSON decodes JSON from the request body into dest and validates its
// `validate` struct tags
func ParseJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return apierrors.Newf(apierrors.CodeInvalidDataRequest, "invalid JSON: %v", err)
	}
	if v, ok := dest.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return apierrors.Wrap(apierrors.CodeInvalidDataRequest, err)
		}
		return nil
	}
	if err := validate.Struct(dest); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return apierrors.Wrap(apierrors.CodeInvalidDataRequest, err)
	}
	return nil
}

// ParseJSONOrError decodes JSON and writes an error response on failure
func ParseJSONOrError(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := ParseJSON(r, dest); err != nil {
		WriteError(w, r, err)
		return false
	}
	return true
}

// ParsePathInt extracts and parses an integer path parameter
func ParsePathInt(r *http.Request, key string) (int, error) {
	str, err := ParsePathString(r, key)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, apierrors.Newf(apierrors.CodeInvalidDataRequest, "invalid integer for %s: %s", key, str)
	}
	return val, nil
}

// ParsePathString extracts a string path parameter
func ParsePathString(r *http.Request, key string) (string, error) {
	str := mux.Vars(r)[key]
	if str == "" {
		return "", apierrors.Newf(apierrors.CodeInvalidDataRequest, "missing path parameter: %s", key)
	}
	return str, nil
}

// ParseQueryInt extracts and parses an integer query parameter
func ParseQueryInt(r *http.Request, key string, defaultVal int) (int, error) {
	str := r.URL.Query().Get(key)
	if str == "" {
		return defaultVal, nil
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, apierrors.Newf(apierrors.CodeInvalidDataRequest, "invalid integer for query param %s: %s", key, str)
	}
	return val, nil
}

// ParseQueryString extracts a string query parameter
func ParseQueryString(r *http.Request, key string, defaultVal string) string {
	if val := r.URL.Query().Get(key); val != "" {
		return val
	}
	return defaultVal
}

// ParseParams validates the request's query string with one of a pagination
// validator's methods:
//
//	params, err := httputil.ParseParams(r, items.PageSortFilter)
func ParseParams[T any](r *http.Request, check func(pagination.Query) (T, error)) (T, error) {
	return check(pagination.QueryFromValues(r.URL.Query()))
}

// ParseParamsOrError validates like ParseParams and writes the error payload on
// failure. The rejected parameter is reported in details.field.
func ParseParamsOrError[T any](ew *ErrorWriter, w http.ResponseWriter, r *http.Request, check func(pagination.Query) (T, error)) (T, bool) {
	params, err := ParseParams(r, check)
	if err == nil {
		return params, true
	}
	if ew == nil {
		ew = defaultErrorWriter
	}
	var verr *pagination.ValidationError
	if errors.As(err, &verr) {
		err = &apierrors.Error{
			Code:    verr.ErrorCode(),
			Message: verr.Message,
			Details: map[string]string{"field": verr.Field},
			Err:     verr,
		}
	}
	ew.Write(w, r, err)
	return params, false
}
