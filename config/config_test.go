package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statuspad/statuspad/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.False(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t, 2*time.Minute, cfg.RateLimit.SweepInterval)
	assert.Equal(t, "valid-token-123", cfg.Auth.Token)
	assert.Equal(t, 3600, cfg.Maintenance.RetryAfter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.IsProd())
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
env: prod
server:
  port: 8080
ratelimit:
  window: 30s
  max_requests: 5
  trust_forwarded: true
auth:
  token: other-token
maintenance:
  retry_after: 120
log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.True(t, cfg.RateLimit.TrustForwarded)
	assert.Equal(t, "other-token", cfg.Auth.Token)
	assert.Equal(t, 120, cfg.Maintenance.RetryAfter)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	tmpDir := t.TempDir()

	basePath := filepath.Join(tmpDir, "base.yaml")
	require.NoError(t, os.WriteFile(basePath, []byte(`
server:
  port: 4000
log:
  level: warn
`), 0o644))

	overridePath := filepath.Join(tmpDir, "override.yaml")
	require.NoError(t, os.WriteFile(overridePath, []byte(`
server:
  port: 4001
`), 0o644))

	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Server.Port, "later files override earlier ones")
	assert.Equal(t, "warn", cfg.Log.Level, "untouched keys survive the merge")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STATUSPAD_SERVER_PORT", "9090")
	t.Setenv("STATUSPAD_AUTH_TOKEN", "env-token")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-token", cfg.Auth.Token)
}

func TestLoad_InvalidPort(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
server:
  port: 70000
`), 0o644))

	_, err := config.Load([]string{configPath}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
log:
  level: loud
`), 0o644))

	_, err := config.Load([]string{configPath}, nil)
	require.Error(t, err)
}

func TestFromContext_Missing(t *testing.T) {
	_, err := config.FromContext(t.Context())
	assert.Error(t, err)
}

func TestWithContext_RoundTrip(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	ctx := config.WithContext(t.Context(), cfg)
	got, err := config.FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
