package core

import "strings"

// Level represents the severity of a log entry. Lower values are more severe.
type Level int8

const (
	// EmergencyLevel: the system is unusable
	EmergencyLevel Level = iota
	// AlertLevel: action must be taken immediately
	AlertLevel
	// CriticalLevel: critical conditions
	CriticalLevel
	// ErrorLevel: error conditions
	ErrorLevel
	// WarningLevel: warning conditions (default handler threshold)
	WarningLevel
	// NoticeLevel: normal but significant conditions
	NoticeLevel
	// InfoLevel: informational messages
	InfoLevel
	// DebugLevel: debug-level messages
	DebugLevel
	// DisableLevel switches a handler off when used as its threshold
	DisableLevel
)

var levelNames = [...]string{
	EmergencyLevel: "EMERGENCY",
	AlertLevel:     "ALERT",
	CriticalLevel:  "CRITICAL",
	ErrorLevel:     "ERROR",
	WarningLevel:   "WARNING",
	NoticeLevel:    "NOTICE",
	InfoLevel:      "INFO",
	DebugLevel:     "DEBUG",
	DisableLevel:   "DISABLE",
}

// String returns the upper-case name of the level, or UNKNOWN
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Valid reports whether l is a usable handler threshold (Emergency..Disable).
func (l Level) Valid() bool {
	return l >= EmergencyLevel && l <= DisableLevel
}

// Enabled reports whether an entry at severity s passes threshold l.
func (l Level) Enabled(s Level) bool {
	return l != DisableLevel && s >= EmergencyLevel && s <= l
}

// ParseLevel converts a case-insensitive level name to a Level.
// INFORMATION and WARN are accepted as aliases.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	switch name {
	case "INFORMATION":
		return InfoLevel, nil
	case "WARN":
		return WarningLevel, nil
	}
	return 0, &ConfigError{Field: "level", Reason: "unknown level " + `"` + s + `"`}
}
