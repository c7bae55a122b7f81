package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a type id is not registered.
var ErrUnknownType = errors.New("unknown analyzer type")

// Registry maps analyzer type ids to their metadata. It is built once at
// startup and passed to the components that need it.
type Registry struct {
	types map[string]Metadata
	order []string
}

// NewRegistry returns a registry holding the given types.
func NewRegistry(types ...Metadata) (*Registry, error) {
	r := &Registry{types: make(map[string]Metadata)}
	for _, m := range types {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an analyzer type.
func (r *Registry) Register(m Metadata) error {
	id := strings.TrimSpace(m.ID)
	if id == "" {
		return fmt.Errorf("register analyzer: empty type id")
	}
	if id == NoOpID {
		return fmt.Errorf("register analyzer: %q is reserved", id)
	}
	if _, exists := r.types[id]; exists {
		return fmt.Errorf("register analyzer: %q already registered", id)
	}
	if m.New == nil {
		return fmt.Errorf("register analyzer %q: missing constructor", id)
	}
	seen := make(map[string]bool, len(m.Properties))
	for _, p := range m.Properties {
		if seen[p.ID] {
			return fmt.Errorf("register analyzer %q: duplicate property %q", id, p.ID)
		}
		seen[p.ID] = true
	}
	m.ID = id
	r.types[id] = m
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the metadata registered under id.
func (r *Registry) Lookup(id string) (Metadata, error) {
	m, ok := r.types[id]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return m, nil
}

// New instantiates the analyzer type registered under id.
func (r *Registry) New(id string) (Analyzer, error) {
	m, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	return m.Instantiate()
}

// List returns the registered types in registration order.
func (r *Registry) List() []Metadata {
	out := make([]Metadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}
