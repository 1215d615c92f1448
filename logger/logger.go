package logger

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler"
	"github.com/philipp01105/sinklog/internal/diag"
)

// Logger dispatches every event to its handlers in registration order.
type Logger struct {
	id       uuid.UUID
	handlers *handler.MultiHandler
	clock    core.Clock
	diag     *zap.Logger
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handlers []handler.Handler
	clock    core.Clock
	diag     *zap.Logger
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{clock: core.SystemClock}
}

// WithHandler appends a handler. Names must be unique.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handlers = append(b.handlers, h)
	return b
}

// WithClock sets the clock that stamps every event
func (b *Builder) WithClock(c core.Clock) *Builder {
	if c != nil {
		b.clock = c
	}
	return b
}

// WithDiagnostics sets the logger that receives handler failures
func (b *Builder) WithDiagnostics(l *zap.Logger) *Builder {
	b.diag = l
	return b
}

// Build creates the Logger instance. It fails with core.ErrDuplicateName
// when two handlers share a name.
func (b *Builder) Build() (*Logger, error) {
	m, err := handler.NewMultiHandler(b.handlers...)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Logger{
		id:       id,
		handlers: m,
		clock:    b.clock,
		diag:     diag.OrNop(b.diag).With(zap.String("logger_id", id.String())),
	}, nil
}

// New creates a Logger with the system clock and no diagnostics.
func New(handlers ...handler.Handler) (*Logger, error) {
	b := NewBuilder()
	for _, h := range handlers {
		b.WithHandler(h)
	}
	return b.Build()
}

// ID returns the instance id used to tag diagnostics.
func (l *Logger) ID() string {
	return l.id.String()
}

// AddHandler registers h after the existing handlers.
func (l *Logger) AddHandler(h handler.Handler) error {
	return l.handlers.Add(h)
}

// Handler returns the handler registered under name (case-insensitive).
func (l *Logger) Handler(name string) (handler.Handler, bool) {
	return l.handlers.Get(name)
}

// RemoveHandler unregisters and returns the named handler without closing it.
func (l *Logger) RemoveHandler(name string) (handler.Handler, error) {
	return l.handlers.Remove(name)
}

// Handlers returns the registered handlers in registration order.
func (l *Logger) Handlers() []handler.Handler {
	return l.handlers.Handlers()
}

// Enabled reports whether at least one handler accepts level.
func (l *Logger) Enabled(level core.Level) bool {
	for _, h := range l.handlers.Handlers() {
		if h.Level().Enabled(level) {
			return true
		}
	}
	return false
}

// Log stamps one event and hands it to every handler. Handler failures are
// reported to the diagnostics logger and do not stop delivery.
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, fields)
}

// log takes the fields as a slice so callers don't re-pack the variadic.
// The timestamp always comes from the logger's clock.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	if l.handlers.Len() == 0 {
		return
	}
	t := l.clock()

	entry := core.GetEntry()
	entry.Time = t
	entry.Level = level
	entry.Message = msg
	entry.Apply(fields...)

	if err := l.handlers.Handle(entry); err != nil {
		l.diag.Warn("handler failed", zap.Stringer("level", level), zap.Error(err))
	}
	core.PutEntry(entry)
}

// Escalate logs the event and then returns err wrapped with msg, so the
// caller can propagate it. A nil err is logged and nil is returned.
func (l *Logger) Escalate(level core.Level, msg string, err error, fields ...core.Field) error {
	l.log(level, msg, fields)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Emergency logs an emergency message
func (l *Logger) Emergency(msg string, fields ...core.Field) {
	l.log(core.EmergencyLevel, msg, fields)
}

// Alert logs an alert message
func (l *Logger) Alert(msg string, fields ...core.Field) {
	l.log(core.AlertLevel, msg, fields)
}

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) {
	l.log(core.CriticalLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.log(core.WarningLevel, msg, fields)
}

// Notice logs a notice message
func (l *Logger) Notice(msg string, fields ...core.Field) {
	l.log(core.NoticeLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, fields)
}

// Emergencyf logs an emergency message with formatting
func (l *Logger) Emergencyf(format string, args ...interface{}) {
	l.log(core.EmergencyLevel, fmt.Sprintf(format, args...), nil)
}

// Alertf logs an alert message with formatting
func (l *Logger) Alertf(format string, args ...interface{}) {
	l.log(core.AlertLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Noticef logs a notice message with formatting
func (l *Logger) Noticef(format string, args ...interface{}) {
	l.log(core.NoticeLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes every handler and returns the combined errors.
func (l *Logger) Close() error {
	return l.handlers.Close()
}
