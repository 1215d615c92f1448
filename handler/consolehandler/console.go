package consolehandler

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/handler"
)

// DefaultName is the name used when ConsoleConfig.Name is empty.
const DefaultName = "console"

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Name identifies the handler (default: "console")
	Name string
	// Level is the severity threshold; see DefaultConsoleConfig for the default
	Level core.Level
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Template is the line layout (default: formatter.DefaultTemplate)
	Template string
	// Registry resolves system and error labels (required)
	Registry *core.Registry
	// Clock is used for entries that carry no timestamp (default: core.SystemClock)
	Clock core.Clock
	// Diagnostics receives internal failures (default: no-op)
	Diagnostics *zap.Logger
}

// DefaultConsoleConfig returns a config with the WARNING threshold.
func DefaultConsoleConfig(reg *core.Registry) ConsoleConfig {
	return ConsoleConfig{
		Name:     DefaultName,
		Level:    core.WarningLevel,
		Registry: reg,
	}
}

// ConsoleHandler writes one line per accepted entry to a writer.
type ConsoleHandler struct {
	handler.Base
	mu     sync.Mutex // serializes writes
	writer io.Writer
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) (*ConsoleHandler, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Template == "" {
		cfg.Template = formatter.DefaultTemplate
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

	h := &ConsoleHandler{writer: cfg.Writer}
	if err := h.Init(cfg.Name, cfg.Level, f, cfg.Diagnostics); err != nil {
		return nil, err
	}
	return h, nil
}

// Handle implements handler.Handler. Write errors are returned.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	buf := formatter.GetBuffer()
	defer formatter.PutBuffer(buf)

	if !h.Prepare(entry, buf) {
		return nil
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	_, err := h.writer.Write(buf.Bytes())
	h.mu.Unlock()
	if err != nil {
		h.Counters().IncrementFailed()
		return err
	}
	h.Counters().IncrementProcessed()
	return nil
}

// Close implements handler.Handler. The writer is not closed.
func (h *ConsoleHandler) Close() error {
	return nil
}

var _ handler.Handler = (*ConsoleHandler)(nil)
