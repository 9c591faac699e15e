package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("kiosk-admin", "admin")
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	assert.Equal(t, "kiosk-admin", parsed.Subject())

	role, ok := parsed.Get("role")
	require.True(t, ok)
	assert.Equal(t, "admin", role)

	typ, _ := parsed.Get("type")
	assert.Equal(t, TokenTypeAccess, typ)

	_, err = jwtauth.VerifyToken(NewJWTService("other", "1h").JWTAuth(), token)
	assert.Error(t, err)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	_, _, err := NewJWTService("secret", "forever").GenerateAccessToken("kiosk-admin", "admin")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h").(*JWTService)
	now := time.Now()
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old", now.Add(-time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("old"))

	svc.RevokeToken("current", now.Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("current"))
	assert.False(t, svc.IsTokenRevoked("old"), "expired entries are pruned")
	assert.False(t, svc.IsTokenRevoked("never"))
}
