package logger

import (
	"github.com/philipp01105/sinklog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	EmergencyLevel = core.EmergencyLevel
	AlertLevel     = core.AlertLevel
	CriticalLevel  = core.CriticalLevel
	ErrorLevel     = core.ErrorLevel
	WarningLevel   = core.WarningLevel
	NoticeLevel    = core.NoticeLevel
	InfoLevel      = core.InfoLevel
	DebugLevel     = core.DebugLevel
	DisableLevel   = core.DisableLevel
)

// ParseLevel converts a level name such as "error" or "information" to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
