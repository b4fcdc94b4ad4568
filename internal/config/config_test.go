package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMACHAT_LOG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Host)
	assert.Equal(t, 5*time.Second, cfg.ErrorDismiss)
	assert.False(t, cfg.Dev)
	assert.Empty(t, cfg.LogPath)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMACHAT_LOG_PATH", "")

	path := filepath.Join(t.TempDir(), "ollamachat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host = "http://gpu-box:11434/"
dev = true
log_path = "/tmp/logs"
error_dismiss = "2s"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434", cfg.Host)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "/tmp/logs", cfg.LogPath)
	assert.Equal(t, 2*time.Second, cfg.ErrorDismiss)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ollamachat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`host = "http://gpu-box:11434"`), 0o644))

	t.Setenv("OLLAMA_HOST", "10.0.0.5:11434")
	t.Setenv("OLLAMACHAT_LOG_PATH", "/var/log/ollamachat")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:11434", cfg.Host)
	assert.Equal(t, "/var/log/ollamachat", cfg.LogPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	cfg := &Config{Host: "http://"}
	assert.Error(t, cfg.Normalize())
}
