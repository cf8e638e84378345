package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("DEBUG"))
	assert.Equal(t, WARN, ParseLevel("WARN"))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
	assert.Equal(t, INFO, ParseLevel(""))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	l, err := New(Config{Level: INFO, FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)
	defer l.Close()

	l.Info("pull finished", F("count", 4))
	l.Debug("should be filtered")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "INFO")
	assert.Contains(t, content, "pull finished")
	assert.Contains(t, content, "count=4")
	assert.NotContains(t, content, "should be filtered")
}

func TestWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := New(Config{Level: DEBUG, FilePath: path})
	require.NoError(t, err)
	defer l.Close()

	scoped := l.WithFields(F("component", "syncer"))
	scoped.Info("started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=syncer")
}

func TestNilLoggerSafe(t *testing.T) {
	// Package-level functions must not panic before Init.
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
	assert.NoError(t, Close())
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := New(Config{Level: ERROR, FilePath: path})
	require.NoError(t, err)
	defer l.Close()

	l.Warn("quiet")
	l.Error("loud")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Count(string(data), "\n")
	assert.Equal(t, 1, lines)
}
