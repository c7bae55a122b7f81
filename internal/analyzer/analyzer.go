// Package analyzer describes pluggable frame analyzers: the instance
// interface, per-type metadata with ordered property descriptors, and the
// explicit registries the application builds once and injects.
package analyzer

import (
	"fmt"
	"image"
)

// Analyzer processes frames and exposes its tunable properties by id.
type Analyzer interface {
	// TypeID returns the id of the Metadata the instance was built from.
	TypeID() string
	Analyze(frame image.Image) (image.Image, error)
	Get(id string) (any, bool)
	Set(id string, value any) error
}

// Property describes one tunable value of an analyzer type.
type Property struct {
	ID      string
	Name    string
	Type    ValueType
	Default any
	Hidden  bool
	Hints   Hints
}

// Hints carry display information for configuration forms.
type Hints struct {
	Min         float64
	Max         float64
	Step        float64
	Description string
}

// Metadata describes an analyzer type.
type Metadata struct {
	ID         string
	Name       string
	Properties []Property
	New        func(Metadata) Analyzer
}

// Property returns the descriptor with the given id.
func (m Metadata) Property(id string) (Property, bool) {
	for _, p := range m.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// Instantiate builds a new analyzer with every property at its default.
func (m Metadata) Instantiate() (Analyzer, error) {
	if m.New == nil {
		return nil, fmt.Errorf("analyzer %q has no constructor", m.ID)
	}
	a := m.New(m)
	if a == nil {
		return nil, fmt.Errorf("analyzer %q constructor returned nil", m.ID)
	}
	return a, nil
}

// CopyProperties copies every declared property of meta from src to dst.
// Properties src does not report are skipped. The first Set error is returned
// after all properties have been attempted.
func CopyProperties(meta Metadata, src, dst Analyzer) error {
	var firstErr error
	for _, p := range meta.Properties {
		v, ok := src.Get(p.ID)
		if !ok {
			continue
		}
		if err := dst.Set(p.ID, v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("copy property %q: %w", p.ID, err)
		}
	}
	return firstErr
}
