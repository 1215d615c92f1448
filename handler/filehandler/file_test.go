package filehandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/sinklog/core"
)

var ts = time.Date(2026, 2, 1, 10, 30, 0, 0, time.Local)

func newFileHandler(t *testing.T, sizeLimit int64, backups int) *FileHandler {
	t.Helper()
	cfg := DefaultFileConfig("test", core.NewRegistry())
	cfg.Dir = t.TempDir()
	cfg.Level = core.DebugLevel
	cfg.SizeLimit = sizeLimit
	cfg.BackupCount = backups
	h, err := NewFileHandler(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func write(t *testing.T, h *FileHandler, msg string) {
	t.Helper()
	require.NoError(t, h.Handle(&core.Entry{Time: ts, Level: core.InfoLevel, Message: msg}))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func line(msg string) string {
	return "2026-02-01T10:30:00 [INFO] GENERAL " + msg + "\n"
}

func TestFileHandler_Layout(t *testing.T) {
	cfg := DefaultFileConfig(" App ", core.NewRegistry())
	cfg.Dir = filepath.Join(t.TempDir(), "nested", "logs")
	h, err := NewFileHandler(cfg)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, "app", h.Name())
	assert.Equal(t, filepath.Join(cfg.Dir, "app.log"), h.Path())
	assert.Equal(t, h.Path()+".3", h.BackupPath(3))
	assert.FileExists(t, h.Path())
}

func TestFileHandler_WritesLine(t *testing.T) {
	h := newFileHandler(t, DefaultSizeLimit, DefaultBackupCount)

	write(t, h, "first")
	write(t, h, "second")
	assert.Equal(t, line("first")+line("second"), readFile(t, h.Path()))
	assert.Equal(t, uint64(2), h.Stats().Processed)
}

func TestFileHandler_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.log"), []byte("old\n"), 0644))

	cfg := DefaultFileConfig("test", core.NewRegistry())
	cfg.Dir = dir
	cfg.Level = core.DebugLevel
	cfg.SizeLimit = 1000
	h, err := NewFileHandler(cfg)
	require.NoError(t, err)
	defer h.Close()

	write(t, h, "boom")
	assert.Equal(t, "old\n"+line("boom"), readFile(t, h.Path()))
}

func TestFileHandler_RotatesOnceWhenLimitExceeded(t *testing.T) {
	h := newFileHandler(t, 100, 3)

	// Each line is 43 bytes: the third one crosses the limit.
	write(t, h, "line 00")
	write(t, h, "line 01")
	assert.NoFileExists(t, h.BackupPath(1))
	write(t, h, "line 02")

	assert.Equal(t, line("line 00")+line("line 01")+line("line 02"), readFile(t, h.BackupPath(1)))
	assert.Empty(t, readFile(t, h.Path()))
	assert.NoFileExists(t, h.BackupPath(2))
	assert.Equal(t, uint64(1), h.Stats().Rotated)

	write(t, h, "line 03")
	assert.Equal(t, line("line 03"), readFile(t, h.Path()))
}

func TestFileHandler_DropsOldestBackup(t *testing.T) {
	h := newFileHandler(t, 10, 2)

	for i := 1; i <= 4; i++ {
		write(t, h, fmt.Sprintf("m%d", i))
	}

	assert.Equal(t, line("m4"), readFile(t, h.BackupPath(1)))
	assert.Equal(t, line("m3"), readFile(t, h.BackupPath(2)))
	assert.NoFileExists(t, h.BackupPath(3))
	assert.Empty(t, readFile(t, h.Path()))

	entries, err := os.ReadDir(filepath.Dir(h.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 3, "active file plus BackupCount backups")
}

func TestFileHandler_ForcedRotate(t *testing.T) {
	h := newFileHandler(t, DefaultSizeLimit, 3)

	write(t, h, "before")
	h.Rotate()
	write(t, h, "after")

	assert.Equal(t, line("before"), readFile(t, h.BackupPath(1)))
	assert.Equal(t, line("after"), readFile(t, h.Path()))
}

func TestFileHandler_RecreatesDeletedFile(t *testing.T) {
	h := newFileHandler(t, DefaultSizeLimit, 3)

	write(t, h, "gone")
	require.NoError(t, os.Remove(h.Path()))
	write(t, h, "back")

	assert.Equal(t, line("back"), readFile(t, h.Path()))
}

func TestFileHandler_DeleteLogs(t *testing.T) {
	h := newFileHandler(t, 10, 3)

	for i := 0; i < 3; i++ {
		write(t, h, "x")
	}
	require.FileExists(t, h.BackupPath(3))

	h.DeleteLogs()
	for i := 1; i <= 3; i++ {
		assert.NoFileExists(t, h.BackupPath(i))
	}
	assert.Empty(t, readFile(t, h.Path()))

	write(t, h, "fresh")
	assert.Equal(t, line("fresh"), readFile(t, h.BackupPath(1)))
}

func TestFileHandler_RenameFailureKeepsWriting(t *testing.T) {
	h := newFileHandler(t, 10, 1)

	// A non-empty directory in the backup slot can be neither removed nor
	// replaced by the active file.
	require.NoError(t, os.MkdirAll(h.BackupPath(1), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(h.BackupPath(1), "keep"), nil, 0644))

	write(t, h, "one")
	write(t, h, "two")

	assert.False(t, h.Inert())
	assert.Equal(t, line("one")+line("two"), readFile(t, h.Path()))
	assert.Equal(t, uint64(2), h.Stats().Failed)
	assert.Zero(t, h.Stats().Rotated)
}

func TestFileHandler_FiltersBelowThreshold(t *testing.T) {
	h := newFileHandler(t, DefaultSizeLimit, 3)
	require.NoError(t, h.SetLevel(core.ErrorLevel))

	write(t, h, "info is dropped")
	require.NoError(t, h.Handle(&core.Entry{Time: ts, Level: core.CriticalLevel, Message: "kept"}))

	assert.Equal(t, "2026-02-01T10:30:00 [CRITICAL] GENERAL kept\n", readFile(t, h.Path()))
}

func TestFileHandler_ClosedIsInert(t *testing.T) {
	h := newFileHandler(t, DefaultSizeLimit, 3)
	require.NoError(t, h.Close())

	assert.True(t, h.Inert())
	write(t, h, "ignored")
	assert.Empty(t, readFile(t, h.Path()))
	assert.NoError(t, h.Close())
}

func TestFileHandler_InertAfterFailedReopen(t *testing.T) {
	h := newFileHandler(t, 10, 2)
	h.openFile = func(string, int, os.FileMode) (*os.File, error) {
		return nil, errors.New("disk gone")
	}

	// The first line crosses the limit: the rename succeeds, the reopen fails.
	write(t, h, "one")

	assert.True(t, h.Inert())
	assert.Equal(t, line("one"), readFile(t, h.BackupPath(1)))
	assert.NoFileExists(t, h.Path())
	assert.Equal(t, uint64(1), h.Stats().Failed)
	assert.Zero(t, h.Stats().Rotated)

	write(t, h, "two")
	h.Rotate()
	assert.NoFileExists(t, h.Path())
	assert.Equal(t, uint64(1), h.Stats().Processed)
	assert.Equal(t, uint64(1), h.Stats().Failed)
}

func TestNewFileHandler_InvalidConfig(t *testing.T) {
	reg := core.NewRegistry()
	tests := []struct {
		name  string
		mod   func(*FileConfig)
		field string
	}{
		{"zero size limit", func(c *FileConfig) { c.SizeLimit = 0 }, "size_limit"},
		{"no backups", func(c *FileConfig) { c.BackupCount = 0 }, "backup_count"},
		{"too many backups", func(c *FileConfig) { c.BackupCount = 100 }, "backup_count"},
		{"blank name", func(c *FileConfig) { c.Name = "  " }, "name"},
		{"name escapes dir", func(c *FileConfig) { c.Name = "../x" }, "name"},
		{"name is parent", func(c *FileConfig) { c.Name = ".." }, "name"},
		{"name with backslash", func(c *FileConfig) { c.Name = `logs\app` }, "name"},
		{"bad level", func(c *FileConfig) { c.Level = 9 }, "level"},
		{"no registry", func(c *FileConfig) { c.Registry = nil }, "registry"},
		{"bad template", func(c *FileConfig) { c.Template = "{msg" }, "template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFileConfig("app", reg)
			cfg.Dir = t.TempDir()
			tt.mod(&cfg)

			_, err := NewFileHandler(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration))
			var cerr *core.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.True(t, strings.HasPrefix(cerr.Field, tt.field), cerr.Field)
		})
	}
}
