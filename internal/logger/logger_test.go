package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerBeforeInitIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogger("early").Info("dropped")
	})
}

func TestConsoleMirroring(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, Init(Options{Dev: true, Console: &console}))
	defer Close()

	l := NewLogger("registry")
	l.Info("Selected:", "llama3")
	l.Warn("slow")
	l.Error("boom [red]")

	out := console.String()
	assert.Contains(t, out, "[green]DEBUG (registry): Selected: llama3[-]")
	assert.Contains(t, out, "[yellow]DEBUG (registry): slow[-]")
	assert.Contains(t, out, "[red]DEBUG (registry): boom [red[]")
}

func TestConsoleIgnoredOutsideDev(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, Init(Options{Console: &console}))
	defer Close()

	NewLogger("quiet").Info("hidden")
	assert.Empty(t, console.String())

	SetConsole(&console)
	NewLogger("quiet").Info("shown")
	assert.Contains(t, console.String(), "shown")

	SetConsole(nil)
	console.Reset()
	NewLogger("quiet").Info("hidden again")
	assert.Empty(t, console.String())
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{LogPath: dir}))

	NewLogger("chat").Error("Failed to get response:", "boom")
	Close()

	files, err := filepath.Glob(filepath.Join(dir, "ollamachat_log_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[chat] ERROR: Failed to get response: boom")
}

func TestInitBadPath(t *testing.T) {
	err := Init(Options{LogPath: filepath.Join(t.TempDir(), "missing", "dir")})
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "WARN", Warn.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "FATAL", Fatal.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
