package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "solid", cfg.StoreBackend)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.False(t, cfg.EnableMetrics)
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: \":7070\"\nstore_backend: memory\n"), 0o600))
	t.Setenv("HYPEY_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.StoreBackend)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: \":7070\"\n"), 0o600))
	t.Setenv("HYPEY_CONFIG", path)
	t.Setenv("SERVER_ADDRESS", ":6060")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.ServerAddress)
}

func TestConfigValidate(t *testing.T) {
	t.Run("production requires a JWT secret", func(t *testing.T) {
		cfg := &Config{Environment: "production", StoreBackend: "solid"}
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := &Config{Environment: "development", StoreBackend: "redis"}
		assert.Error(t, cfg.Validate())
	})
}
