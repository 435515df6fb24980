package auth

import "slices"

// Scope represents an API permission granted to a credential
type Scope string

// ScopeAll grants every scope
const ScopeAll Scope = "*"

// AuthContext holds the authenticated caller of a request
type AuthContext struct {
	Credentials Credentials
	Subject     string
	Scopes      []Scope
	Admin       bool
}

// HasScope checks if the context has a specific scope.
// Admins and holders of ScopeAll pass every check.
func (ac *AuthContext) HasScope(scope Scope) bool {
	if ac == nil {
		return false
	}
	if ac.Admin {
		return true
	}
	return slices.Contains(ac.Scopes, ScopeAll) || slices.Contains(ac.Scopes, scope)
}
