package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/sinklog/core"
)

// Formatter renders an accepted entry into a handler's line format.
type Formatter interface {
	// FormatEntry appends the rendered line (without trailing newline) to buf.
	// It returns false when the entry must be dropped, e.g. because its system
	// or error code cannot be resolved; buf content is then unspecified.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer) bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty pooled buffer.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
