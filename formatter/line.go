package formatter

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/sinklog/core"
)

// Timestamp layouts used by the built-in handlers.
const (
	// ISOLayout renders YYYY-MM-DDTHH:MM:SS in local time.
	ISOLayout = "2006-01-02T15:04:05"
	// RFC3164Layout renders "Mon DD HH:MM:SS" with a space-padded day.
	RFC3164Layout = "Jan _2 15:04:05"
)

// Config holds Line formatter configuration
type Config struct {
	// Template is the compiled line layout (default: DefaultTemplate)
	Template *Template
	// TimestampLayout is the time layout for {timestamp} (default: ISOLayout)
	TimestampLayout string
	// Registry resolves system and error labels (required)
	Registry *core.Registry
	// Clock supplies the time for entries without a timestamp (default: core.SystemClock)
	Clock core.Clock
}

// Line renders entries into a fixed template, resolving labels through a
// Registry. Unknown system or error identifiers make it drop the entry.
type Line struct {
	tmpl     *Template
	layout   string
	registry *core.Registry
	clock    core.Clock
}

var defaultTemplate = MustCompile(DefaultTemplate, nil)

// NewLine creates a new line formatter
func NewLine(cfg Config) (*Line, error) {
	if cfg.Registry == nil {
		return nil, core.Configf("registry", "is required")
	}
	if cfg.Template == nil {
		cfg.Template = defaultTemplate
	}
	if cfg.TimestampLayout == "" {
		cfg.TimestampLayout = ISOLayout
	}
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock
	}
	return &Line{
		tmpl:     cfg.Template,
		layout:   cfg.TimestampLayout,
		registry: cfg.Registry,
		clock:    cfg.Clock,
	}, nil
}

// Template returns the compiled layout.
func (f *Line) Template() *Template {
	return f.tmpl
}

// FormatEntry implements Formatter.
func (f *Line) FormatEntry(entry *core.Entry, buf *bytes.Buffer) bool {
	sys := core.SysGeneral
	if entry.HasSystem {
		sys = entry.System
	}
	sysName, ok := f.registry.SystemName(sys)
	if !ok {
		return false
	}

	var errDesc string
	if entry.HasError {
		if errDesc, ok = f.registry.ErrorDescription(entry.ErrorID); !ok {
			return false
		}
	}

	for _, seg := range f.tmpl.segments {
		switch seg.kind {
		case literal:
			buf.WriteString(seg.text)
		case timestamp:
			t := entry.Time
			if t.IsZero() {
				t = f.clock()
			}
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.layout))
		case level:
			buf.WriteString(entry.Level.String())
		case priority:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Level), 10))
		case system:
			buf.WriteString(sysName)
		case context:
			writeContext(buf, entry.Context)
		case errTitle:
			if entry.HasError {
				buf.WriteString(errDesc)
				buf.WriteString("(#")
				buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.ErrorID), 10))
				buf.WriteString("): ")
			}
		case message:
			buf.WriteString(entry.Message)
		}
	}
	return true
}

// writeContext renders "@ctx" with spaces turned into underscores.
func writeContext(buf *bytes.Buffer, ctx string) {
	if ctx == "" {
		return
	}
	buf.WriteByte('@')
	if strings.IndexByte(ctx, ' ') < 0 {
		buf.WriteString(ctx)
		return
	}
	buf.WriteString(strings.ReplaceAll(ctx, " ", "_"))
}

// Timestamp renders t (or the clock's time when t is zero) with the
// formatter's layout.
func (f *Line) Timestamp(t time.Time) string {
	if t.IsZero() {
		t = f.clock()
	}
	return t.Format(f.layout)
}
