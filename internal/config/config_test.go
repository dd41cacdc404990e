package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "parking-allocation-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL())
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadInvalidNumericFallsBackToDefault(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("CACHE_TTL_SECONDS", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.App.RequestTimeoutSeconds)
	assert.Equal(t, 5, cfg.Cache.TTLSeconds)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "oops")

	_, err := Load()
	require.Error(t, err)
}
