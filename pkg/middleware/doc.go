// Package middleware provides HTTP middleware for authentication and authorization.
//
// # Middleware Components
//
// AuthMiddleware: credential authentication
//
//	keys := auth.NewKeyStore()
//	authn := middleware.NewAuthMiddleware(keys, false, errs)
//	router.Use(authn.Handler)
//	// Reads Bearer, Basic or X-API-KEY credentials, verifies them and adds
//	// an *auth.AuthContext to the request
//
// Optional mode lets requests without credentials through; malformed or
// rejected credentials still fail with 401.
//
// RequireScope: scope checks on authenticated requests
//
//	sub.Use(middleware.RequireScope("items:write", errs))
//
// Failures are written through httputil.ErrorWriter as unauthorized (401) or
// forbidden (403) payloads.
//
// # Related Packages
//
//   - pkg/auth: Credential parsing and key verification
//   - pkg/httputil: Error payloads
package middleware
