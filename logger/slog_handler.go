package logger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/philipp01105/sinklog/core"
)

// Attribute keys the slog bridge maps onto event fields. Any other
// attribute is appended to the message as " key=value".
const (
	SlogSystemKey  = "sys"
	SlogContextKey = "context"
	SlogErrorKey   = "error_id"
)

// SlogHandler is an adapter that implements slog.Handler on top of a Logger,
// so code written against log/slog reaches the same handlers.
type SlogHandler struct {
	logger *Logger
	fields []core.Field
	extra  string
	group  string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Logger.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether any handler of the logger accepts the level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(slogLevelToCore(level))
}

// Handle converts the record into an event and logs it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	fields := s.fields
	var msg strings.Builder
	msg.WriteString(record.Message)
	msg.WriteString(s.extra)

	if record.NumAttrs() > 0 {
		fields = make([]core.Field, len(s.fields), len(s.fields)+record.NumAttrs())
		copy(fields, s.fields)
		record.Attrs(func(a slog.Attr) bool {
			fields = appendAttr(fields, &msg, s.group, a)
			return true
		})
	}

	s.logger.log(slogLevelToCore(record.Level), msg.String(), fields)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]core.Field, len(s.fields), len(s.fields)+len(attrs))
	copy(fields, s.fields)
	var extra strings.Builder
	extra.WriteString(s.extra)
	for _, a := range attrs {
		fields = appendAttr(fields, &extra, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		fields: fields,
		extra:  extra.String(),
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		fields: s.fields,
		extra:  s.extra,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level > slog.LevelInfo:
		return core.NoticeLevel
	case level == slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr maps the well-known ungrouped keys onto fields and renders
// everything else into msg.
func appendAttr(fields []core.Field, msg *strings.Builder, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	switch {
	case group == "":
	case a.Key == "":
		key = group
	default:
		key = group + "." + a.Key
	}

	if group == "" {
		switch a.Key {
		case SlogSystemKey:
			if a.Value.Kind() == slog.KindInt64 {
				return append(fields, System(core.SystemID(a.Value.Int64())))
			}
		case SlogContextKey:
			return append(fields, Context(a.Value.String()))
		case SlogErrorKey:
			if a.Value.Kind() == slog.KindInt64 {
				return append(fields, ErrorCode(core.ErrorID(a.Value.Int64())))
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, msg, key, ga)
		}
		return fields
	}

	msg.WriteByte(' ')
	msg.WriteString(key)
	msg.WriteByte('=')
	msg.WriteString(a.Value.String())
	return fields
}

var _ slog.Handler = (*SlogHandler)(nil)
