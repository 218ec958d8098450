package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Daraja   DarajaConfig
	Twilio   TwilioConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// DarajaConfig holds the Safaricom Daraja app credentials and endpoints.
// TokenURL and PushURL default to the sandbox; point them at production
// when the shortcode goes live.
type DarajaConfig struct {
	ConsumerKey      string
	ConsumerSecret   string
	Passkey          string
	Shortcode        string
	CallbackURL      string
	TokenURL         string
	PushURL          string
	AccountReference string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
}

// AdminConfig holds the single admin login. PasswordHash is a bcrypt hash,
// never the plain password.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// Load reads .env (if present) and the process environment into a Config,
// then validates it. Missing required variables fail here, not on the
// first request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8099"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             os.Getenv("DATABASE_DSN"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Expiry: 24 * time.Hour,
			Issuer: "jogoo",
		},
		Daraja: DarajaConfig{
			ConsumerKey:      os.Getenv("CONSUMER_KEY"),
			ConsumerSecret:   os.Getenv("CONSUMER_SECRET"),
			Passkey:          os.Getenv("PASSKEY"),
			Shortcode:        os.Getenv("SHORTCODE"),
			CallbackURL:      os.Getenv("CALLBACK_URL"),
			TokenURL:         getEnv("DARAJA_TOKEN_URL", "https://sandbox.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials"),
			PushURL:          getEnv("DARAJA_STK_PUSH_URL", "https://sandbox.safaricom.co.ke/mpesa/stkpush/v1/processrequest"),
			AccountReference: getEnv("ACCOUNT_REFERENCE", "JogooCBO"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
			BaseURL:    getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		},
		Admin: AdminConfig{
			Email:        os.Getenv("ADMIN_EMAIL"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required variable at once.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		name, value string
	}{
		{"DATABASE_DSN", c.Database.DSN},
		{"JWT_SECRET", c.JWT.Secret},
		{"CONSUMER_KEY", c.Daraja.ConsumerKey},
		{"CONSUMER_SECRET", c.Daraja.ConsumerSecret},
		{"PASSKEY", c.Daraja.Passkey},
		{"SHORTCODE", c.Daraja.Shortcode},
		{"CALLBACK_URL", c.Daraja.CallbackURL},
		{"TWILIO_ACCOUNT_SID", c.Twilio.AccountSID},
		{"TWILIO_AUTH_TOKEN", c.Twilio.AuthToken},
		{"TWILIO_PHONE_NUMBER", c.Twilio.FromNumber},
		{"ADMIN_EMAIL", c.Admin.Email},
		{"ADMIN_PASSWORD_HASH", c.Admin.PasswordHash},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
