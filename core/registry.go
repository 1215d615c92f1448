package core

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// SystemID identifies the subsystem an event originates from.
type SystemID int

// ErrorID identifies a registered error description.
type ErrorID int

const (
	// SysGeneral is the reserved default system, rendered when an entry has no system.
	SysGeneral SystemID = 0
	// ErrUnknown is the reserved default error code.
	ErrUnknown ErrorID = 0
)

// Label is a single registry record.
type Label struct {
	ID   int
	Text string
}

// Registry maps system and error identifiers to their labels. Entries are
// append-only; a Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	systems map[int]string
	errors  map[int]string
}

// NewRegistry returns a Registry holding only the reserved defaults.
func NewRegistry() *Registry {
	return &Registry{
		systems: map[int]string{int(SysGeneral): "GENERAL"},
		errors:  map[int]string{int(ErrUnknown): "Unknown error"},
	}
}

// RegisterSystem adds a system under the next free identifier.
func (r *Registry) RegisterSystem(name string) (SystemID, error) {
	id, err := r.register(r.systems, "system", name, -1)
	return SystemID(id), err
}

// RegisterSystemID adds a system under an explicit identifier.
func (r *Registry) RegisterSystemID(name string, id SystemID) (SystemID, error) {
	if id < 0 {
		return 0, Configf("system", "id must be non-negative, got %d", id)
	}
	n, err := r.register(r.systems, "system", name, int(id))
	return SystemID(n), err
}

// RegisterError adds an error description under the next free identifier.
func (r *Registry) RegisterError(description string) (ErrorID, error) {
	id, err := r.register(r.errors, "error", description, -1)
	return ErrorID(id), err
}

// RegisterErrorID adds an error description under an explicit identifier.
func (r *Registry) RegisterErrorID(description string, id ErrorID) (ErrorID, error) {
	if id < 0 {
		return 0, Configf("error", "id must be non-negative, got %d", id)
	}
	n, err := r.register(r.errors, "error", description, int(id))
	return ErrorID(n), err
}

// register stores label under id; id < 0 allocates max+1.
func (r *Registry) register(m map[int]string, kind, label string, id int) (int, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, Configf(kind, "label must be a non-empty string")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id < 0 {
		id = 1
		if len(m) > 0 {
			hi := maxKey(m)
			if hi == math.MaxInt {
				return 0, Configf(kind, "no identifier left after %d", hi)
			}
			id = hi + 1
		}
	} else if _, exists := m[id]; exists {
		return 0, Configf(kind, "id %d already exists", id)
	}

	m[id] = label
	return id, nil
}

func maxKey(m map[int]string) int {
	first := true
	var hi int
	for k := range m {
		if first || k > hi {
			hi = k
			first = false
		}
	}
	return hi
}

// SystemName looks up the label of a system.
func (r *Registry) SystemName(id SystemID) (string, bool) {
	r.mu.RLock()
	name, ok := r.systems[int(id)]
	r.mu.RUnlock()
	return name, ok
}

// ErrorDescription looks up the description of an error code.
func (r *Registry) ErrorDescription(id ErrorID) (string, bool) {
	r.mu.RLock()
	desc, ok := r.errors[int(id)]
	r.mu.RUnlock()
	return desc, ok
}

// Systems returns all registered systems ordered by identifier.
func (r *Registry) Systems() []Label {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedLabels(r.systems)
}

// Errors returns all registered error descriptions ordered by identifier.
func (r *Registry) Errors() []Label {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedLabels(r.errors)
}

func sortedLabels(m map[int]string) []Label {
	out := make([]Label, 0, len(m))
	for id, text := range m {
		out = append(out, Label{ID: id, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
