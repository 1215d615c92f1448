package handler

import (
	"bytes"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/internal/diag"
)

// Handler is a named, independently thresholded destination for log entries.
type Handler interface {
	// Name returns the normalized (trimmed, lower-case) handler name
	Name() string

	// Level returns the current threshold
	Level() core.Level

	// SetLevel changes the threshold; values outside Emergency..Disable are rejected
	SetLevel(level core.Level) error

	// Handle filters, formats and emits a log entry. Entries that do not pass
	// the threshold or cannot be rendered are dropped silently. Transport and
	// storage failures the handler can recover from are not returned.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that expose their counters.
type StatsProvider interface {
	Stats() Snapshot
}

// NormalizeName trims and lower-cases a handler name.
func NormalizeName(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", core.Configf("name", "must be a non-empty string")
	}
	return n, nil
}

// Base carries the state and filtering logic shared by every handler.
// Concrete handlers embed it and call Init from their constructor.
type Base struct {
	name      string
	level     atomic.Int32
	formatter formatter.Formatter
	stats     *Stats
	diag      *zap.Logger
}

// Init validates and stores the common handler parameters.
func (b *Base) Init(name string, level core.Level, f formatter.Formatter, log *zap.Logger) error {
	n, err := NormalizeName(name)
	if err != nil {
		return err
	}
	if !level.Valid() {
		return core.Configf("level", "must be between %d and %d, got %d", core.EmergencyLevel, core.DisableLevel, level)
	}
	if f == nil {
		return core.Configf("formatter", "is required")
	}
	b.name = n
	b.level.Store(int32(level))
	b.formatter = f
	b.stats = NewStats()
	b.diag = diag.OrNop(log).With(zap.String("handler", n))
	return nil
}

// Name implements Handler.
func (b *Base) Name() string {
	return b.name
}

// Level implements Handler.
func (b *Base) Level() core.Level {
	return core.Level(b.level.Load())
}

// SetLevel implements Handler.
func (b *Base) SetLevel(level core.Level) error {
	if !level.Valid() {
		return core.Configf("level", "must be between %d and %d, got %d", core.EmergencyLevel, core.DisableLevel, level)
	}
	b.level.Store(int32(level))
	return nil
}

// Prepare applies the threshold and renders the entry into buf. It returns
// false, counting the entry as filtered, when the handler is disabled, the
// severity is outside [0, level] or the formatter rejects the entry.
func (b *Base) Prepare(entry *core.Entry, buf *bytes.Buffer) bool {
	if !b.Level().Enabled(entry.Level) {
		b.stats.IncrementFiltered()
		return false
	}
	if !b.formatter.FormatEntry(entry, buf) {
		b.stats.IncrementFiltered()
		return false
	}
	return true
}

// Stats returns a snapshot of the handler counters.
func (b *Base) Stats() Snapshot {
	return b.stats.GetSnapshot()
}

// Counters exposes the live counters to the embedding handler.
func (b *Base) Counters() *Stats {
	return b.stats
}

// Diag returns the diagnostics logger tagged with the handler name.
func (b *Base) Diag() *zap.Logger {
	return b.diag
}
