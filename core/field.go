package core

// FieldType represents which optional entry attribute a Field sets
type FieldType uint8

const (
	SystemType FieldType = iota
	ContextType
	ErrorType
)

// Field is an optional attribute of a log event
type Field struct {
	Type  FieldType
	Int64 int64
	Str   string
}

func (f Field) apply(e *Entry) {
	switch f.Type {
	case SystemType:
		e.System = SystemID(f.Int64)
		e.HasSystem = true
	case ContextType:
		e.Context = f.Str
	case ErrorType:
		e.ErrorID = ErrorID(f.Int64)
		e.HasError = true
	}
}
