package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Feed.PageSize)
	assert.Equal(t, 15, cfg.Feed.PostSummaryLength)
	assert.Equal(t, 20*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "local", cfg.Storage.Backend)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGE_SIZE", "3")
	t.Setenv("CACHE_TTL", "45")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("SITE_URL", "https://yatube.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Feed.PageSize)
	assert.Equal(t, 45*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "https://yatube.example.com", cfg.App.SiteURL)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SOME_TTL", "1m30s")
	assert.Equal(t, 90*time.Second, getEnvDuration("SOME_TTL", time.Second))

	t.Setenv("SOME_TTL", "nonsense")
	assert.Equal(t, time.Second, getEnvDuration("SOME_TTL", time.Second))
}

func TestValidate(t *testing.T) {
	t.Run("production needs a session secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("unknown cache backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("page size must be positive", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
