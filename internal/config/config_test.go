package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_SERVICE_KEY", "")
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://proj.supabase.co", cfg.Supabase.URL)
}

func TestLoadYAMLFile(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9090
  shutdown_timeout: 5s
  allowed_origins:
    - https://zafranhouse.example
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://zafranhouse.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "jwt-secret", cfg.Supabase.JWTSecret)
}

func TestValidate(t *testing.T) {
	t.Run("missing supabase URL", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SUPABASE_URL", "")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing anon key", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SUPABASE_ANON_KEY", "")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		setBaseEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestMalformedYAML(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
