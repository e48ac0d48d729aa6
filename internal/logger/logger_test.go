package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	c, err := Init(Options{})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	Info("dropped") // must not panic
}

func TestInit_WriterReceivesDebug(t *testing.T) {
	t.Cleanup(func() { _, _ = Init(Options{}) })

	var out bytes.Buffer
	_, err := Init(Options{Enabled: true, Writer: &out, Level: slog.LevelDebug})
	require.NoError(t, err)

	Debug("resolve failed", "raw", "0x1001")
	require.Contains(t, out.String(), "resolve failed")
	require.Contains(t, out.String(), "raw=0x1001")
}

func TestInit_LogDirWritesDatedFile(t *testing.T) {
	t.Cleanup(func() { _, _ = Init(Options{}) })

	dir := t.TempDir()
	c, err := Init(Options{Enabled: true, LogDir: dir})
	require.NoError(t, err)
	Info("session started")
	require.NoError(t, c.Close())

	name := logPrefix + time.Now().Format("2006-01-02") + logSuffix
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"session started"`)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	old := filepath.Join(dir, logPrefix+"2026-01-01"+logSuffix)
	recent := filepath.Join(dir, logPrefix+"2026-02-20"+logSuffix)
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	cleanOldLogs(dir, now)

	require.NoFileExists(t, old)
	require.FileExists(t, recent)
	require.FileExists(t, other)
}
