package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Scheme is the authentication method a request used
type Scheme string

const (
	SchemeBearer Scheme = "Bearer"
	SchemeBasic  Scheme = "Basic"
	SchemeAPIKey Scheme = "X-API-KEY"
	SchemeNone   Scheme = "none"
)

// Request headers carrying credentials
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-KEY"
)

var (
	ErrNoCredentials   = errors.New("no credentials provided")
	ErrMalformedHeader = errors.New("malformed authorization header")
)

// Credentials are the raw values a request authenticated with.
// Token holds the bearer token or API key; Username and Password are set for Basic.
type Credentials struct {
	Scheme   Scheme
	Token    string
	Username string
	Password string
}

// Detect reports which scheme the headers use without validating them.
// Unrecognized Authorization values count as none.
func Detect(h http.Header) Scheme {
	if scheme, _, ok := splitAuthorization(h.Get(HeaderAuthorization)); ok {
		switch {
		case strings.EqualFold(scheme, string(SchemeBearer)):
			return SchemeBearer
		case strings.EqualFold(scheme, string(SchemeBasic)):
			return SchemeBasic
		}
	}
	if h.Get(HeaderAPIKey) != "" {
		return SchemeAPIKey
	}
	return SchemeNone
}

// FromRequest extracts credentials from the Authorization or X-API-KEY header.
// Authorization wins when both are present.
func FromRequest(r *http.Request) (Credentials, error) {
	header := r.Header.Get(HeaderAuthorization)
	if header == "" {
		if key := strings.TrimSpace(r.Header.Get(HeaderAPIKey)); key != "" {
			return Credentials{Scheme: SchemeAPIKey, Token: key}, nil
		}
		return Credentials{Scheme: SchemeNone}, ErrNoCredentials
	}

	scheme, value, ok := splitAuthorization(header)
	if !ok || value == "" {
		return Credentials{}, fmt.Errorf("%w: expected '<scheme> <credentials>'", ErrMalformedHeader)
	}

	switch {
	case strings.EqualFold(scheme, string(SchemeBearer)):
		return Credentials{Scheme: SchemeBearer, Token: value}, nil
	case strings.EqualFold(scheme, string(SchemeBasic)):
		return parseBasic(value)
	default:
		return Credentials{}, fmt.Errorf("%w: unsupported scheme %q", ErrMalformedHeader, scheme)
	}
}

func parseBasic(encoded string) (Credentials, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid basic encoding: %v", ErrMalformedHeader, err)
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok || user == "" {
		return Credentials{}, fmt.Errorf("%w: basic credentials must be user:password", ErrMalformedHeader)
	}
	return Credentials{Scheme: SchemeBasic, Username: user, Password: pass}, nil
}

// splitAuthorization splits "<scheme> <value>" on the first space
func splitAuthorization(header string) (scheme, value string, ok bool) {
	scheme, value, ok = strings.Cut(strings.TrimSpace(header), " ")
	if !ok || scheme == "" {
		return "", "", false
	}
	return scheme, strings.TrimSpace(value), true
}
