package benchmark

import (
	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler"
)

// noopHandler accepts everything and writes nothing. It measures the
// dispatcher without formatting or I/O.
type noopHandler struct {
	name string
}

func newNoopHandler(name string) handler.Handler {
	return &noopHandler{name: name}
}

func (h *noopHandler) Name() string {
	return h.name
}

func (h *noopHandler) Level() core.Level {
	return core.DebugLevel
}

func (h *noopHandler) SetLevel(core.Level) error {
	return nil
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
