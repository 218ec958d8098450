package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_DSN", "user:pass@tcp(localhost:3306)/jogoo?parseTime=True")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CONSUMER_KEY", "ck")
	t.Setenv("CONSUMER_SECRET", "cs")
	t.Setenv("PASSKEY", "pk")
	t.Setenv("SHORTCODE", "174379")
	t.Setenv("CALLBACK_URL", "https://example.com/mpesa-callback")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15551234567")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8099", cfg.Server.Port)
	assert.Equal(t, "174379", cfg.Daraja.Shortcode)
	assert.Equal(t, "https://sandbox.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials", cfg.Daraja.TokenURL)
	assert.Equal(t, "https://sandbox.safaricom.co.ke/mpesa/stkpush/v1/processrequest", cfg.Daraja.PushURL)
	assert.Equal(t, "JogooCBO", cfg.Daraja.AccountReference)
	assert.Equal(t, "https://api.twilio.com", cfg.Twilio.BaseURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONSUMER_KEY", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	// Every missing variable is reported at once.
	assert.Contains(t, err.Error(), "CONSUMER_KEY")
	assert.Contains(t, err.Error(), "TWILIO_AUTH_TOKEN")
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DARAJA_TOKEN_URL", "http://localhost:1234/token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:1234/token", cfg.Daraja.TokenURL)
}
