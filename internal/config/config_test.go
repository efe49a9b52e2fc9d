package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Adapter)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 30*time.Second, cfg.Autosave)
	assert.True(t, cfg.Favicons)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/var/lib/pinstack"
adapter = "sqlite"
encoding = "yaml"
redis_addr = "localhost:6379"
session_ttl_seconds = 7200
debounce_ms = 250
autosave_seconds = 60
favicons = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/pinstack", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Adapter)
	assert.Equal(t, "yaml", cfg.Encoding)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, time.Minute, cfg.Autosave)
	assert.False(t, cfg.Favicons)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `adapter = "sqlite"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Adapter)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.Favicons)
}

func TestLoad_MalformedConfig(t *testing.T) {
	path := writeConfig(t, `adapter = [broken`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_TildeExpansion(t *testing.T) {
	path := writeConfig(t, `data_dir = "~/pinstack-data"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pinstack-data"), cfg.DataDir)
}

func TestDatabasePath(t *testing.T) {
	cfg := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "pinstack.db"), cfg.DatabasePath())
}
