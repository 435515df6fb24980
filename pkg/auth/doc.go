// Package auth reads request credentials and verifies API keys.
//
// # Schemes
//
// Requests authenticate with one of three headers:
//
//	Authorization: Bearer <token>
//	Authorization: Basic <base64(user:password)>
//	X-API-KEY: <key>
//
// Detect classifies a request for metrics and logs without failing; anything it
// cannot classify is SchemeNone. FromRequest is strict and returns ErrNoCredentials
// or ErrMalformedHeader.
//
// # Keys
//
//	store := auth.NewKeyStore()
//	key, _ := store.Issue("ci-bot", "items:read")
//	// key: cc_xxx (shown once), only SHA256(key) is kept
//
//	authCtx, err := store.Verify(ctx, creds)
//	if err == nil && authCtx.HasScope("items:read") { ... }
//
// KeyStore satisfies middleware.Verifier.
//
// # Related Packages
//
//   - pkg/middleware: HTTP authentication middleware
//   - pkg/observability: auth_type metric label
package auth
