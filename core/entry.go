package core

import (
	"sync"
	"time"
)

// Entry represents a single log event
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Context string

	System    SystemID
	HasSystem bool

	ErrorID  ErrorID
	HasError bool
}

// Apply sets every field on the entry.
func (e *Entry) Apply(fields ...Field) {
	for _, f := range fields {
		f.apply(e)
	}
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{}
	},
}

// GetEntry retrieves a cleared Entry from the pool
func GetEntry() *Entry {
	return entryPool.Get().(*Entry)
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	*e = Entry{}
	entryPool.Put(e)
}
