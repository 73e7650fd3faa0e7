package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg := NewConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ADMIN2024", cfg.GetAdminAccessCode())
	assert.True(t, cfg.GetSendConfirmationEmail())
	assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenExpiry())
	assert.Equal(t, 168*time.Hour, cfg.GetRefreshTokenExpiry())
	assert.Equal(t, 24*time.Hour, cfg.GetEmailConfirmationTokenExpiry())
	assert.Equal(t, 5, cfg.GetProfileProvisionMaxAttempts())
	assert.Equal(t, 30*time.Second, cfg.GetProfileProvisionRetryDelay())
	assert.Equal(t, "secret", cfg.StorageSigningSecret)
	assert.NotEqual(t, cfg.StoragePublicBaseURL, cfg.StorageProtectedBaseURL)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("ADMIN_ACCESS_CODE", "letmein")
	t.Setenv("SEND_CONFIRMATION_EMAIL", "false")
	t.Setenv("SIGNED_URL_EXPIRY_MINUTES", "3")
	t.Setenv("PROFILE_PROVISION_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")

	cfg := NewConfig()

	assert.Equal(t, "letmein", cfg.GetAdminAccessCode())
	assert.False(t, cfg.GetSendConfirmationEmail())
	assert.Equal(t, 3*time.Minute, cfg.GetSignedURLExpiry())
	assert.Equal(t, 5, cfg.GetProfileProvisionMaxAttempts())
	assert.Equal(t, 2.5, cfg.RateLimitPerSecond)
}
