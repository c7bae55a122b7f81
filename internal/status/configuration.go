package status

import (
	"slices"

	"github.com/five82/livia/internal/analyzer"
)

// Override sets one analyzer property when a configuration is instantiated.
type Override struct {
	Property string
	Value    any
}

// AnalyzerConfiguration is a named recipe for building an analyzer: a type id
// plus property overrides. Names need not be unique.
type AnalyzerConfiguration struct {
	Name      string
	Analyzer  string
	Overrides []Override
}

// NewAnalyzerConfiguration returns a configuration whose overrides hold at
// most one entry per property; a later duplicate replaces an earlier one.
func NewAnalyzerConfiguration(name, analyzerType string, overrides ...Override) AnalyzerConfiguration {
	c := AnalyzerConfiguration{Name: name, Analyzer: analyzerType}
	for _, o := range overrides {
		c = c.WithOverride(o.Property, o.Value)
	}
	return c
}

// Override returns the override value for property.
func (c AnalyzerConfiguration) Override(property string) (any, bool) {
	for _, o := range c.Overrides {
		if o.Property == property {
			return o.Value, true
		}
	}
	return nil, false
}

// WithOverride returns a copy of c with property set to value, replacing an
// existing override in place.
func (c AnalyzerConfiguration) WithOverride(property string, value any) AnalyzerConfiguration {
	out := c
	out.Overrides = slices.Clone(c.Overrides)
	for i, o := range out.Overrides {
		if o.Property == property {
			out.Overrides[i].Value = value
			return out
		}
	}
	out.Overrides = append(out.Overrides, Override{Property: property, Value: value})
	return out
}

// Equal reports whether c and other describe the same configuration.
func (c AnalyzerConfiguration) Equal(other AnalyzerConfiguration) bool {
	if c.Name != other.Name || c.Analyzer != other.Analyzer || len(c.Overrides) != len(other.Overrides) {
		return false
	}
	for i, o := range c.Overrides {
		p := other.Overrides[i]
		if o.Property != p.Property || !analyzer.Equal(o.Value, p.Value) {
			return false
		}
	}
	return true
}

func cloneConfigurations(list []AnalyzerConfiguration) []AnalyzerConfiguration {
	if list == nil {
		return nil
	}
	out := make([]AnalyzerConfiguration, len(list))
	for i, c := range list {
		out[i] = c
		out[i].Overrides = slices.Clone(c.Overrides)
	}
	return out
}

func equalConfigurations(a, b []AnalyzerConfiguration) bool {
	return slices.EqualFunc(a, b, AnalyzerConfiguration.Equal)
}
