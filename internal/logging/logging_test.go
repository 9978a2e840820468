package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "glass")
	require.NoError(t, Init(dir, slog.LevelDebug))
	t.Cleanup(func() { _ = Close() })

	require.Equal(t, filepath.Join(dir, LogFileName), Path())

	Info("hello", "issue", "123")
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"msg":"hello"`))
	require.True(t, strings.Contains(string(data), `"issue":"123"`))
}

func TestInitEmptyDirDiscards(t *testing.T) {
	require.NoError(t, Init("", slog.LevelInfo))
	t.Cleanup(func() { _ = Close() })

	require.Empty(t, Path())
	require.NotPanics(t, func() { Warn("dropped") })
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	require.Equal(t, filepath.Join("/tmp/state", AppDir), DefaultDir())
}
