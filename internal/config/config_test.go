package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("WRITE_RATE_WINDOW", "30s")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.WriteRateWindow)
	assert.False(t, cfg.DBAutoMigrate)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, time.Hour, cfg.S3PresignExpiry)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "-3")
	assert.Equal(t, 5, envInt("X_INT", 5))

	t.Setenv("X_BOOL", "maybe")
	assert.True(t, envBool("X_BOOL", true))

	t.Setenv("X_DUR", "2m")
	assert.Equal(t, 2*time.Minute, envDuration("X_DUR", time.Second))

	assert.Equal(t, "fallback", envString("X_UNSET_STRING", "fallback"))
}
