package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every construction-time validation error.
	ErrConfiguration = errors.New("configuration error")
	// ErrDuplicateName is returned when a handler name is already registered.
	ErrDuplicateName = errors.New("duplicate handler name")
	// ErrNotFound is returned when no handler with the given name exists.
	ErrNotFound = errors.New("handler not found")
)

// ConfigError describes an invalid construction parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Configf builds a ConfigError for field with a formatted reason.
func Configf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
