package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Setenv("BOTAPI_JWT_SECRET", "test-secret")
	t.Setenv("BOTAPI_DISCORD_CLIENT_ID", "client-id")
	t.Setenv("BOTAPI_DISCORD_CLIENT_SECRET", "client-secret")
	t.Setenv("BOTAPI_DISCORD_REDIRECT_URI", "http://localhost:8080/auth/callback")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "botapi.db", cfg.DBPath)
	assert.Equal(t, "memory", cfg.StateBackend)
	assert.Equal(t, 10*time.Minute, cfg.StateTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OriginsCSV(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BOTAPI_FRONTEND_ORIGINS", "https://example.com, https://staging.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestValidate_MissingDiscordCredentials(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BOTAPI_DISCORD_CLIENT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOTAPI_DISCORD_CLIENT_SECRET")
}

func TestValidate_UnknownStateBackend(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BOTAPI_STATE_BACKEND", "etcd")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state backend")
}

func TestValidate_RedisBackend(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BOTAPI_STATE_BACKEND", "REDIS")
	t.Setenv("BOTAPI_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "redis", cfg.StateBackend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}
