package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "JWT_EXPIRY", "INSIGHT_TIMEOUT", "INSIGHT_CACHE_SIZE", "MIGRATE_ON_START", "LOG_LEVEL", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30*time.Second, cfg.InsightTimeout)
	assert.Equal(t, 512, cfg.InsightCacheSize)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("INSIGHT_TIMEOUT", "5s")
	t.Setenv("INSIGHT_CACHE_SIZE", "0")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_MODEL", "gemini-pro")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.InsightTimeout)
	assert.Equal(t, 0, cfg.InsightCacheSize)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "gemini-pro", cfg.GeminiModel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "tomorrow")
	t.Setenv("INSIGHT_CACHE_SIZE", "lots")
	t.Setenv("MIGRATE_ON_START", "maybe")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 512, cfg.InsightCacheSize)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
