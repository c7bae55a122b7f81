package analyzer

import "fmt"

// Properties is a typed property bag that analyzer implementations embed.
// It holds exactly the properties declared by the metadata, starting at their
// defaults.
type Properties struct {
	meta   Metadata
	values map[string]any
}

// NewProperties returns a bag initialized from the defaults of meta.
func NewProperties(meta Metadata) Properties {
	values := make(map[string]any, len(meta.Properties))
	for _, p := range meta.Properties {
		v, err := p.Type.Check(p.Default)
		if err != nil {
			v = p.Default
		}
		values[p.ID] = v
	}
	return Properties{meta: meta, values: values}
}

// TypeID returns the id of the metadata the bag was built from.
func (p *Properties) TypeID() string {
	return p.meta.ID
}

// Metadata returns the descriptors of the bag.
func (p *Properties) Metadata() Metadata {
	return p.meta
}

// Get returns the value of a declared property.
func (p *Properties) Get(id string) (any, bool) {
	v, ok := p.values[id]
	return v, ok
}

// Set stores value after checking it against the declared type.
func (p *Properties) Set(id string, value any) error {
	prop, ok := p.meta.Property(id)
	if !ok {
		return fmt.Errorf("analyzer %q has no property %q", p.meta.ID, id)
	}
	checked, err := prop.Type.Check(value)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", p.meta.ID, id, err)
	}
	p.values[id] = checked
	return nil
}

// Int returns an int property, or zero when unset or of another type.
func (p *Properties) Int(id string) int {
	v, _ := p.values[id].(int)
	return v
}

// Float returns a float property, or zero when unset or of another type.
func (p *Properties) Float(id string) float64 {
	v, _ := p.values[id].(float64)
	return v
}

// Bool returns a bool property.
func (p *Properties) Bool(id string) bool {
	v, _ := p.values[id].(bool)
	return v
}

// Color returns a color property.
func (p *Properties) Color(id string) Color {
	v, _ := p.values[id].(Color)
	return v
}
