// Package diag builds the internal diagnostics logger.
//
// Handlers never let transport or storage failures reach the caller; they
// report them here instead. Diagnostics are off by default (Nop) and are
// switched on by the application, typically from the config file.
package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds diagnostics configuration
type Config struct {
	// Level is the minimum zap level name (default: "warn")
	Level string `yaml:"level"`
	// Output is "stderr", "stdout" or a file path (default: "stderr")
	Output string `yaml:"output"`
	// MaxSizeMB is the rotation size for file output (default: 1)
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept for file output (default: 2)
	MaxBackups int `yaml:"max_backups"`
	// Compress gzips rotated diagnostics files
	Compress bool `yaml:"compress"`
	// Development switches to the human-readable console encoder
	Development bool `yaml:"development"`
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// New creates a diagnostics logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("diagnostics level: %w", err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Development {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	out, err := output(cfg)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, out, zap.NewAtomicLevelAt(level))
	return zap.New(core).Named("sinklog"), nil
}

func output(cfg Config) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return nil, fmt.Errorf("diagnostics directory: %w", err)
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 1
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 2
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Output,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}), nil
}
