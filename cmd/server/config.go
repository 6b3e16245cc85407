package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/panyam/authgate"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - Addr: bind address for the HTTP server.
//   - DatabaseURL: PostgreSQL DSN. Required.
//   - JWTSecret: HMAC secret for signing auth tokens (HS256). Required.
//   - SigninTokenLifetime / SignupTokenLifetime: per-flow token lifetimes.
//   - SecureCookies: whether cookies are marked Secure (production only).
type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	SigninTokenLifetime time.Duration
	SignupTokenLifetime time.Duration
	SecureCookies       bool
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one exists. DATABASE_URL and AUTHGATE_JWT_SECRET are required;
// a missing value is a startup error, never a per-request one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          envOr("AUTHGATE_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("AUTHGATE_JWT_SECRET"),
		SecureCookies: os.Getenv("AUTHGATE_ENV") == "production",
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("AUTHGATE_JWT_SECRET is required")
	}

	var err error
	cfg.SigninTokenLifetime, err = envDuration("AUTHGATE_SIGNIN_TOKEN_LIFETIME", authgate.DefaultTokenLifetime)
	if err != nil {
		return nil, err
	}
	cfg.SignupTokenLifetime, err = envDuration("AUTHGATE_SIGNUP_TOKEN_LIFETIME", authgate.DefaultTokenLifetime)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionLifetime sizes the server-side session so it outlives tokens from
// either flow, whichever is configured longer.
func (c *Config) SessionLifetime() time.Duration {
	if c.SignupTokenLifetime > c.SigninTokenLifetime {
		return c.SignupTokenLifetime
	}
	return c.SigninTokenLifetime
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
