package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/auth"
	"github.com/crypticorn-ai/apiutils/pkg/contextkeys"
	"github.com/crypticorn-ai/apiutils/pkg/httputil"
)

// Verifier resolves request credentials to an authenticated caller.
// auth.KeyStore is the built-in implementation.
type Verifier interface {
	Verify(ctx context.Context, creds auth.Credentials) (*auth.AuthContext, error)
}

// VerifierFunc adapts a function to Verifier
type VerifierFunc func(ctx context.Context, creds auth.Credentials) (*auth.AuthContext, error)

func (f VerifierFunc) Verify(ctx context.Context, creds auth.Credentials) (*auth.AuthContext, error) {
	return f(ctx, creds)
}

// AuthMiddleware provides authentication middleware
type AuthMiddleware struct {
	verifier Verifier
	optional bool // If true, allow requests without credentials
	errors   *httputil.ErrorWriter
}

// NewAuthMiddleware creates a new authentication middleware. A nil error writer
// uses the built-in registry.
func NewAuthMiddleware(verifier Verifier, optional bool, errs *httputil.ErrorWriter) *AuthMiddleware {
	if errs == nil {
		errs = httputil.NewErrorWriter(nil)
	}
	return &AuthMiddleware{
		verifier: verifier,
		optional: optional,
		errors:   errs,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, err := auth.FromRequest(r)
		if err != nil {
			if m.optional && errors.Is(err, auth.ErrNoCredentials) {
				next.ServeHTTP(w, r)
				return
			}
			m.unauthorized(w, r, err.Error(), err)
			return
		}

		authCtx, err := m.verifier.Verify(r.Context(), creds)
		if err == nil && authCtx == nil {
			err = auth.ErrUnknownKey
		}
		if err != nil {
			m.unauthorized(w, r, "invalid or expired credentials", err)
			return
		}

		ctx := contextkeys.WithAuth(r.Context(), authCtx)
		if authCtx.Subject != "" {
			ctx = contextkeys.WithSubject(ctx, authCtx.Subject)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) unauthorized(w http.ResponseWriter, r *http.Request, message string, cause error) {
	m.errors.Write(w, r, (&apierrors.Error{
		Code:    apierrors.CodeUnauthorized,
		Message: message,
		Err:     cause,
	}).WithHeaders(map[string]string{"WWW-Authenticate": `Bearer realm="api"`}))
}

// GetAuthContext extracts auth context from request
func GetAuthContext(r *http.Request) *auth.AuthContext {
	authCtx, _ := r.Context().Value(contextkeys.AuthKey).(*auth.AuthContext)
	return authCtx
}

// RequireScope creates middleware that checks for a specific scope
func RequireScope(scope auth.Scope, errs *httputil.ErrorWriter) func(http.Handler) http.Handler {
	if errs == nil {
		errs = httputil.NewErrorWriter(nil)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := GetAuthContext(r)
			if authCtx == nil {
				errs.WriteCode(w, r, apierrors.CodeUnauthorized, "authentication required")
				return
			}

			if !authCtx.HasScope(scope) {
				errs.Write(w, r, apierrors.Newf(apierrors.CodeForbidden, "insufficient permissions: missing scope %s", scope).
					WithDetails(map[string]string{"required_scope": string(scope)}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
