package handler

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/sinklog/core"
)

// MultiHandler is an ordered set of uniquely named handlers. Entries are
// delivered in registration order.
type MultiHandler struct {
	mu       sync.RWMutex
	handlers []Handler // replaced, never mutated in place
}

// NewMultiHandler creates a multi-handler holding handlers in the given order.
func NewMultiHandler(handlers ...Handler) (*MultiHandler, error) {
	m := &MultiHandler{}
	for _, h := range handlers {
		if err := m.Add(h); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends h. It fails with core.ErrDuplicateName if a handler with the
// same normalized name is already present.
func (m *MultiHandler) Add(h Handler) error {
	if h == nil {
		return core.Configf("handler", "must not be nil")
	}
	name, err := NormalizeName(h.Name())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if indexOf(m.handlers, name) >= 0 {
		return fmt.Errorf("%w: %q", core.ErrDuplicateName, name)
	}
	next := make([]Handler, len(m.handlers), len(m.handlers)+1)
	copy(next, m.handlers)
	m.handlers = append(next, h)
	return nil
}

// Get looks a handler up by name, ignoring case and surrounding space.
func (m *MultiHandler) Get(name string) (Handler, bool) {
	n, err := NormalizeName(name)
	if err != nil {
		return nil, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := indexOf(m.handlers, n); i >= 0 {
		return m.handlers[i], true
	}
	return nil, false
}

// Remove detaches the named handler and returns it without closing it.
func (m *MultiHandler) Remove(name string) (Handler, error) {
	n, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.handlers, n)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrNotFound, n)
	}
	h := m.handlers[i]
	next := make([]Handler, 0, len(m.handlers)-1)
	next = append(next, m.handlers[:i]...)
	m.handlers = append(next, m.handlers[i+1:]...)
	return h, nil
}

// Handlers returns the handlers in delivery order.
func (m *MultiHandler) Handlers() []Handler {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Handler, len(m.handlers))
	copy(out, m.handlers)
	return out
}

// Len returns the number of handlers.
func (m *MultiHandler) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers)
}

// Handle sends the entry to every handler in order. A failing handler does
// not stop delivery to the ones after it; all failures are returned combined.
func (m *MultiHandler) Handle(entry *core.Entry) error {
	m.mu.RLock()
	handlers := m.handlers
	m.mu.RUnlock()

	var errs error
	for _, h := range handlers {
		if err := h.Handle(entry); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("handler %q: %w", h.Name(), err))
		}
	}
	return errs
}

// Close closes all handlers
func (m *MultiHandler) Close() error {
	var errs error
	for _, h := range m.Handlers() {
		errs = multierr.Append(errs, h.Close())
	}
	return errs
}

// indexOf compares normalized names; Name() may be mixed-case for handlers
// that do not embed Base.
func indexOf(handlers []Handler, name string) int {
	for i, h := range handlers {
		if n, _ := NormalizeName(h.Name()); n == name {
			return i
		}
	}
	return -1
}
