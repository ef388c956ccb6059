package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvStore, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "totonoe.log"), cfg.LogPath())

	data, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"store_backend":"file","log_level":"info"}`, string(data))
}

func TestSaveThenLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvStore, "")
	t.Setenv(EnvLogFile, "")

	require.NoError(t, SaveConfig(Config{StateDir: dir, StoreBackend: "sqlite", LogLevel: "warn"}))

	t.Setenv(EnvLogLevel, "debug")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv(EnvStore, "memory")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreBackend)
}
