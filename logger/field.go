package logger

import (
	"github.com/philipp01105/sinklog/core"
)

// Field helper functions for convenience

// System tags the event with a registered system id
func System(id core.SystemID) core.Field {
	return core.Field{Type: core.SystemType, Int64: int64(id)}
}

// Context attaches a free-form context string; spaces render as "_"
func Context(ctx string) core.Field {
	return core.Field{Type: core.ContextType, Str: ctx}
}

// ErrorCode tags the event with a registered error id
func ErrorCode(id core.ErrorID) core.Field {
	return core.Field{Type: core.ErrorType, Int64: int64(id)}
}
