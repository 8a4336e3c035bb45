package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "meddesk", cfg.App.Name)
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.Equal(t, "./meddesk-data", cfg.Storage.FileDir)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Tracing.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, BackendRedis, cfg.Storage.Backend)
	require.Equal(t, "redis.internal:6380", cfg.Storage.Redis.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "dynamodb")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestLoad_PostgresPasswordRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_PASSWORD")
}
