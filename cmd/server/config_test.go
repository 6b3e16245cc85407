package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTHGATE_JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("AUTHGATE_JWT_SECRET", "test-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/authgate", cfg.DatabaseURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	t.Setenv("AUTHGATE_JWT_SECRET", "test-secret")
	t.Setenv("AUTHGATE_ADDR", "")
	t.Setenv("AUTHGATE_ENV", "")
	t.Setenv("AUTHGATE_SIGNIN_TOKEN_LIFETIME", "")
	t.Setenv("AUTHGATE_SIGNUP_TOKEN_LIFETIME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.SigninTokenLifetime)
	assert.Equal(t, 24*time.Hour, cfg.SignupTokenLifetime)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime())
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	t.Setenv("AUTHGATE_JWT_SECRET", "test-secret")
	t.Setenv("AUTHGATE_ADDR", ":9999")
	t.Setenv("AUTHGATE_ENV", "production")
	t.Setenv("AUTHGATE_SIGNIN_TOKEN_LIFETIME", "12h")
	t.Setenv("AUTHGATE_SIGNUP_TOKEN_LIFETIME", "168h")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 12*time.Hour, cfg.SigninTokenLifetime)
	assert.Equal(t, 168*time.Hour, cfg.SignupTokenLifetime)

	// The session must outlive tokens from the longer flow
	assert.Equal(t, 168*time.Hour, cfg.SessionLifetime())

	t.Setenv("AUTHGATE_SIGNIN_TOKEN_LIFETIME", "not-a-duration")
	_, err = LoadConfig()
	require.Error(t, err)
}
