package storeapi

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenStore(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		assert.Empty(t, s.Token())
		assert.False(t, s.Valid())
	})

	t.Run("stores opaque tokens without expiry", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		s.Set("opaque-token-123")
		assert.Equal(t, "opaque-token-123", s.Token())
		assert.True(t, s.Valid())
	})

	t.Run("honors the expiry claim of a live JWT", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		token := signedToken(t, time.Now().Add(time.Hour))
		s.Set(token)
		assert.Equal(t, token, s.Token())
		assert.True(t, s.Valid())
	})

	t.Run("withholds expired JWTs", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		s.Set(signedToken(t, time.Now().Add(-time.Hour)))
		assert.Empty(t, s.Token())
		assert.False(t, s.Valid())
	})

	t.Run("clear forgets the token", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		s.Set("tok-abc")
		s.Clear()
		assert.Empty(t, s.Token())
		assert.False(t, s.Valid())
	})

	t.Run("setting empty resets the store", func(t *testing.T) {
		s := NewTokenStore(zap.NewNop())
		s.Set("tok-abc")
		s.Set("")
		assert.False(t, s.Valid())
	})
}
