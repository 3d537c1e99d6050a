package storeapi

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenStore holds the bearer token for backend calls. The backend issues
// JWTs; the client cannot verify their signature (it has no key) but it can
// read the expiry claim to discard tokens that are already stale instead of
// sending requests doomed to 401.
type TokenStore struct {
	logger *zap.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewTokenStore creates an empty token store
func NewTokenStore(logger *zap.Logger) *TokenStore {
	return &TokenStore{logger: logger}
}

// Set stores a bearer token, inspecting its expiry claim when it parses as
// a JWT. Opaque tokens are stored without an expiry.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.expiresAt = time.Time{}
	if token == "" {
		return
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Debug("Token is not a parseable JWT, storing without expiry", zap.Error(err))
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	s.expiresAt = exp.Time
	if time.Now().After(s.expiresAt) {
		s.logger.Warn("Stored token is already expired", zap.Time("expires_at", s.expiresAt))
	}
}

// Clear forgets the stored token
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Token returns the stored bearer token, or an empty string when no token
// is held or the held token has expired.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return ""
	}
	return s.token
}

// Valid reports whether a usable token is held
func (s *TokenStore) Valid() bool {
	return s.Token() != ""
}
