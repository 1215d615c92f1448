package filehandler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/handler"
)

// Defaults applied by DefaultFileConfig.
const (
	DefaultSizeLimit   = 20480
	DefaultBackupCount = 3
	MaxBackupCount     = 99
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Name identifies the handler and names the active file <Dir>/<name>.log
	Name string
	// Level is the severity threshold
	Level core.Level
	// Dir is the directory holding the log files (default: ".")
	Dir string
	// SizeLimit is the active file size in bytes that triggers rotation once exceeded
	SizeLimit int64
	// BackupCount is the number of numbered backups kept (1..99)
	BackupCount int
	// Template is the line layout (default: formatter.DefaultTemplate)
	Template string
	// Registry resolves system and error labels (required)
	Registry *core.Registry
	// Clock is used for entries that carry no timestamp (default: core.SystemClock)
	Clock core.Clock
	// Diagnostics receives storage failures (default: no-op)
	Diagnostics *zap.Logger
}

// DefaultFileConfig returns a config with the WARNING threshold and the
// default rotation limits.
func DefaultFileConfig(name string, reg *core.Registry) FileConfig {
	return FileConfig{
		Name:        name,
		Level:       core.WarningLevel,
		Dir:         ".",
		SizeLimit:   DefaultSizeLimit,
		BackupCount: DefaultBackupCount,
		Registry:    reg,
	}
}

// FileHandler appends formatted lines to a file and rotates it into
// numbered backups when it grows past the size limit.
type FileHandler struct {
	handler.Base

	mu          sync.Mutex // protects everything below
	path        string
	file        *os.File
	size        int64
	sizeLimit   int64
	backupCount int
	inert       bool
	buf         bytes.Buffer

	openFile func(name string, flag int, perm os.FileMode) (*os.File, error)
}

// NewFileHandler validates cfg, creates Dir if needed and opens the active
// file for appending.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Template == "" {
		cfg.Template = formatter.DefaultTemplate
	}
	if cfg.SizeLimit <= 0 {
		return nil, core.Configf("size_limit", "must be greater than 0, got %d", cfg.SizeLimit)
	}
	if cfg.BackupCount < 1 || cfg.BackupCount > MaxBackupCount {
		return nil, core.Configf("backup_count", "must be between 1 and %d, got %d", MaxBackupCount, cfg.BackupCount)
	}

	tmpl, err := formatter.Compile(cfg.Template, nil)
	if err != nil {
		return nil, err
	}
	f, err := formatter.NewLine(formatter.Config{
		Template: tmpl,
		Registry: cfg.Registry,
		Clock:    cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	h := &FileHandler{
		sizeLimit:   cfg.SizeLimit,
		backupCount: cfg.BackupCount,
		openFile:    os.OpenFile,
	}
	if err := h.Init(cfg.Name, cfg.Level, f, cfg.Diagnostics); err != nil {
		return nil, err
	}
	// The name becomes a file name inside Dir.
	if n := h.Name(); strings.ContainsAny(n, `/\`) || n == "." || n == ".." {
		return nil, core.Configf("name", "must not contain path elements, got %q", n)
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	h.path = filepath.Join(cfg.Dir, h.Name()+".log")
	if err := h.open(); err != nil {
		return nil, err
	}
	h.buf.Grow(256)
	return h, nil
}

// Path returns the active file path.
func (h *FileHandler) Path() string {
	return h.path
}

// BackupPath returns the path of backup i, where 1 is the most recent.
func (h *FileHandler) BackupPath(i int) string {
	return fmt.Sprintf("%s.%d", h.path, i)
}

// Inert reports whether a failed reopen has disabled the handler.
func (h *FileHandler) Inert() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inert
}

// Handle implements handler.Handler. Storage failures are reported to the
// diagnostics logger and never returned.
func (h *FileHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.inert {
		return nil
	}
	h.buf.Reset()
	if !h.Prepare(entry, &h.buf) {
		return nil
	}
	h.buf.WriteByte('\n')

	if err := h.ensureOpen(); err != nil {
		h.fail("reopen log file", err)
		return nil
	}

	n, err := h.file.Write(h.buf.Bytes())
	h.size += int64(n)
	if err != nil {
		h.fail("write log file", err)
		return nil
	}
	h.Counters().IncrementProcessed()

	if h.size > h.sizeLimit {
		h.rotate()
	}
	return nil
}

// Rotate forces a rotation regardless of the current size.
func (h *FileHandler) Rotate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inert {
		return
	}
	h.rotate()
}

// DeleteLogs removes the active file and every numbered backup. Removal
// failures are ignored. The handler keeps writing to a fresh active file.
func (h *FileHandler) DeleteLogs() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeFile()
	_ = os.Remove(h.path)
	for i := 1; i <= MaxBackupCount; i++ {
		_ = os.Remove(h.BackupPath(i))
	}
	if h.inert {
		return
	}
	if err := h.open(); err != nil {
		h.fail("reopen after delete", err)
		h.inert = true
	}
}

// Close implements handler.Handler.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inert = true
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// open opens (or creates) the active file and records its size.
func (h *FileHandler) open() error {
	file, err := h.openFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	h.file = file
	h.size = info.Size()
	return nil
}

// ensureOpen reopens the active file when it was removed from disk or the
// handle is gone.
func (h *FileHandler) ensureOpen() error {
	if h.file != nil {
		_, err := os.Stat(h.path)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		h.Diag().Warn("active log file disappeared, recreating", zap.String("path", h.path))
		h.closeFile()
	}
	return h.open()
}

func (h *FileHandler) closeFile() {
	if h.file == nil {
		return
	}
	if err := h.file.Close(); err != nil {
		h.Diag().Debug("close log file", zap.Error(err))
	}
	h.file = nil
}

// rotate shifts the backups up by one slot, moves the active file to .1
// and opens an empty active file.
func (h *FileHandler) rotate() {
	// Drop the oldest slot first so the shift below never overwrites it.
	_ = os.Remove(h.BackupPath(h.backupCount))
	for i := h.backupCount - 1; i >= 1; i-- {
		if err := os.Rename(h.BackupPath(i), h.BackupPath(i+1)); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.Diag().Debug("shift backup", zap.Int("slot", i), zap.Error(err))
		}
	}

	h.closeFile()
	if err := os.Rename(h.path, h.BackupPath(1)); err != nil {
		h.fail("rotate log file", err)
		// Keep writing to the original file rather than staying closed.
		if openErr := h.open(); openErr != nil {
			h.fail("reopen log file", openErr)
			h.inert = true
		}
		return
	}

	if err := h.open(); err != nil {
		h.fail("open log file after rotation", err)
		h.inert = true
		return
	}
	h.Counters().IncrementRotated()
}

func (h *FileHandler) fail(msg string, err error) {
	h.Counters().IncrementFailed()
	h.Diag().Warn(msg, zap.String("path", h.path), zap.Error(err))
}

var _ handler.Handler = (*FileHandler)(nil)
