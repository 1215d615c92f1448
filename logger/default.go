package logger

import (
	"sync"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler/consolehandler"
)

var (
	defaultRegistry = core.NewRegistry()
	defaultLogger   *Logger
	defaultMu       sync.RWMutex
)

func init() {
	// Initialize default logger with a console handler at WARNING
	h, err := consolehandler.NewConsoleHandler(consolehandler.DefaultConsoleConfig(defaultRegistry))
	if err != nil {
		panic(err)
	}
	defaultLogger, err = New(h)
	if err != nil {
		panic(err)
	}
}

// DefaultRegistry returns the registry used by the default logger's
// console handler. Systems and errors registered here can be used with the
// package-level functions.
func DefaultRegistry() *core.Registry {
	return defaultRegistry
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Log logs at level using the default logger
func Log(level Level, msg string, fields ...core.Field) {
	Default().Log(level, msg, fields...)
}

// Escalate logs using the default logger and returns err wrapped with msg
func Escalate(level Level, msg string, err error, fields ...core.Field) error {
	return Default().Escalate(level, msg, err, fields...)
}

// Emergency logs an emergency message using the default logger
func Emergency(msg string, fields ...core.Field) {
	Default().Emergency(msg, fields...)
}

// Alert logs an alert message using the default logger
func Alert(msg string, fields ...core.Field) {
	Default().Alert(msg, fields...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	Default().Warn(msg, fields...)
}

// Notice logs a notice message using the default logger
func Notice(msg string, fields ...core.Field) {
	Default().Notice(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	Default().Warnf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}
