package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Scheme
	}{
		{"bearer", map[string]string{"Authorization": "Bearer token123"}, SchemeBearer},
		{"basic", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}, SchemeBasic},
		{"api key", map[string]string{"X-API-KEY": "api-key-123"}, SchemeAPIKey},
		{"lowercase api key header", map[string]string{"x-api-key": "api-key-123"}, SchemeAPIKey},
		{"invalid format", map[string]string{"Authorization": "invalidformat"}, SchemeNone},
		{"unknown scheme", map[string]string{"Authorization": "Digest abc"}, SchemeNone},
		{"no headers", map[string]string{}, SchemeNone},
		{"authorization wins", map[string]string{"Authorization": "Bearer t", "X-API-KEY": "k"}, SchemeBearer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, Detect(h))
		})
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Credentials
		wantErr error
	}{
		{
			name:    "bearer",
			headers: map[string]string{"Authorization": "Bearer token123"},
			want:    Credentials{Scheme: SchemeBearer, Token: "token123"},
		},
		{
			name:    "bearer case-insensitive scheme",
			headers: map[string]string{"Authorization": "bearer token123"},
			want:    Credentials{Scheme: SchemeBearer, Token: "token123"},
		},
		{
			name:    "basic",
			headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			want:    Credentials{Scheme: SchemeBasic, Username: "user", Password: "pass"},
		},
		{
			name:    "api key",
			headers: map[string]string{"X-API-KEY": "api-key-123"},
			want:    Credentials{Scheme: SchemeAPIKey, Token: "api-key-123"},
		},
		{
			name:    "missing",
			headers: map[string]string{},
			wantErr: ErrNoCredentials,
		},
		{
			name:    "no scheme",
			headers: map[string]string{"Authorization": "invalidformat"},
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "bearer without token",
			headers: map[string]string{"Authorization": "Bearer "},
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "unsupported scheme",
			headers: map[string]string{"Authorization": "Digest abc"},
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "basic not base64",
			headers: map[string]string{"Authorization": "Basic !!!"},
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "basic without colon",
			headers: map[string]string{"Authorization": "Basic dXNlcg=="},
			wantErr: ErrMalformedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got, err := FromRequest(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthContext_HasScope(t *testing.T) {
	tests := []struct {
		name string
		ac   *AuthContext
		want bool
	}{
		{"nil context", nil, false},
		{"exact scope", &AuthContext{Scopes: []Scope{"items:read"}}, true},
		{"missing scope", &AuthContext{Scopes: []Scope{"items:write"}}, false},
		{"wildcard", &AuthContext{Scopes: []Scope{ScopeAll}}, true},
		{"admin", &AuthContext{Admin: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ac.HasScope("items:read"))
		})
	}
}

func TestGenerateKey(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		key, err := GenerateKey()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, KeyPrefix))
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestHashKey(t *testing.T) {
	h1 := HashKey("cc_test123456789")
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, HashKey("cc_test123456789"))
	assert.NotEqual(t, h1, HashKey("cc_different"))
}

func TestDisplayPrefix(t *testing.T) {
	assert.Equal(t, "cc_abcdefgh", DisplayPrefix("cc_abcdefghijklmnop"))
	assert.Equal(t, "cc_abc", DisplayPrefix("cc_abc"))
	assert.Equal(t, "", DisplayPrefix("other_abcdefghij"))
}

func TestKeyStore(t *testing.T) {
	ctx := context.Background()
	store := NewKeyStore()

	key, err := store.Issue("ci-bot", "items:read")
	require.NoError(t, err)
	store.Register("static-admin-key", "ops", ScopeAll)
	assert.Equal(t, 2, store.Len())

	t.Run("bearer", func(t *testing.T) {
		ac, err := store.Verify(ctx, Credentials{Scheme: SchemeBearer, Token: key})
		require.NoError(t, err)
		assert.Equal(t, "ci-bot", ac.Subject)
		assert.True(t, ac.HasScope("items:read"))
		assert.False(t, ac.HasScope("items:write"))
		assert.False(t, ac.Admin)
	})

	t.Run("api key admin", func(t *testing.T) {
		ac, err := store.Verify(ctx, Credentials{Scheme: SchemeAPIKey, Token: "static-admin-key"})
		require.NoError(t, err)
		assert.True(t, ac.Admin)
		assert.True(t, ac.HasScope("anything"))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := store.Verify(ctx, Credentials{Scheme: SchemeBearer, Token: "cc_nope"})
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("basic rejected", func(t *testing.T) {
		_, err := store.Verify(ctx, Credentials{Scheme: SchemeBasic, Username: "u", Password: key})
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("revoke", func(t *testing.T) {
		assert.True(t, store.Revoke(key))
		assert.False(t, store.Revoke(key))
		_, err := store.Verify(ctx, Credentials{Scheme: SchemeBearer, Token: key})
		assert.ErrorIs(t, err, ErrUnknownKey)
	})
}
