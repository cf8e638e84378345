package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.ConfirmReplace)
	assert.Contains(t, cfg.DataDir, ".personal-assistant")
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("PA_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("PA_SUPABASE_KEY", "anon-key")
	t.Setenv("PA_DATA_DIR", "/tmp/pa-data")
	t.Setenv("PA_LOG_LEVEL", "DEBUG")

	cfg := DefaultConfig()

	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon-key", cfg.SupabaseKey)
	assert.Equal(t, "/tmp/pa-data", cfg.DataDir)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.SupabaseURL = "https://example.supabase.co"
	cfg.ConfirmReplace = false
	require.NoError(t, cfg.Save())

	path, err := Path()
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.supabase.co", loaded.SupabaseURL)
	assert.False(t, loaded.ConfirmReplace)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".personal-assistant")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0600))

	_, err := Load()
	assert.Error(t, err)
}
