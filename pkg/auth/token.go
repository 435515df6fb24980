package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	// KeyPrefix identifies keys issued by a KeyStore
	KeyPrefix = "cc_"
	// KeyLength is the number of random bytes in a key (256 bits)
	KeyLength = 32
)

var ErrUnknownKey = errors.New("invalid or revoked key")

// GenerateKey creates a new API key.
// Format: cc_<base64url(32 random bytes)>
func GenerateKey() (key string, err error) {
	randomBytes := make([]byte, KeyLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// HashKey computes the SHA256 hash of a key for lookup
func HashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// DisplayPrefix returns the first 8 characters after the prefix for display
func DisplayPrefix(key string) string {
	encoded, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return ""
	}
	if len(encoded) >= 8 {
		return KeyPrefix + encoded[:8]
	}
	return key
}

type keyEntry struct {
	subject string
	scopes  []Scope
	admin   bool
}

// KeyStore verifies bearer tokens and API keys against an in-memory set of hashed keys.
// Only hashes are retained.
type KeyStore struct {
	mu   sync.RWMutex
	keys map[string]keyEntry
}

// NewKeyStore creates an empty key store
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]keyEntry)}
}

// Issue generates a key for subject and registers it. The plaintext key is
// returned once and cannot be recovered later.
func (s *KeyStore) Issue(subject string, scopes ...Scope) (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	s.Register(key, subject, scopes...)
	return key, nil
}

// Register adds an existing key, e.g. one loaded from configuration
func (s *KeyStore) Register(key, subject string, scopes ...Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[HashKey(key)] = keyEntry{
		subject: subject,
		scopes:  scopes,
		admin:   containsAll(scopes),
	}
}

// Revoke removes a key. It reports whether the key was known.
func (s *KeyStore) Revoke(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := HashKey(key)
	_, ok := s.keys[hash]
	delete(s.keys, hash)
	return ok
}

// Len returns the number of registered keys
func (s *KeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Verify resolves bearer tokens and API keys. Basic credentials are not accepted.
func (s *KeyStore) Verify(_ context.Context, creds Credentials) (*AuthContext, error) {
	if creds.Scheme != SchemeBearer && creds.Scheme != SchemeAPIKey {
		return nil, fmt.Errorf("%w: scheme %s not accepted", ErrUnknownKey, creds.Scheme)
	}

	s.mu.RLock()
	entry, ok := s.keys[HashKey(creds.Token)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownKey
	}

	return &AuthContext{
		Credentials: creds,
		Subject:     entry.subject,
		Scopes:      entry.scopes,
		Admin:       entry.admin,
	}, nil
}

func containsAll(scopes []Scope) bool {
	for _, s := range scopes {
		if s == ScopeAll {
			return true
		}
	}
	return false
}
