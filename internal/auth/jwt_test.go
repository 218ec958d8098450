package auth

import (
	"testing"
	"time"

	"jogoo/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "jogoo"}

	token, err := GenerateToken(cfg, "admin@example.com", "ADMIN")
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "jogoo", claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "jogoo"}
	token, err := GenerateToken(cfg, "admin@example.com", "ADMIN")
	require.NoError(t, err)

	other := &config.JWTConfig{Secret: "different-secret", Expiry: time.Hour, Issuer: "jogoo"}
	_, err = ParseToken(other, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiry: -time.Minute, Issuer: "jogoo"}
	token, err := GenerateToken(cfg, "admin@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = ParseToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
