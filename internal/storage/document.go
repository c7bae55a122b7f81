package storage

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is the persisted form of the session configuration. It is built
// fresh from the status on every save.
type Document struct {
	Shortcuts map[string][]string `toml:"shortcuts,omitempty" yaml:"shortcuts,omitempty"`
	Analyzers AnalyzersSection    `toml:"analyzers" yaml:"analyzers"`
}

// AnalyzersSection holds one section per analyzer kind.
type AnalyzersSection struct {
	Live   KindSection `toml:"live" yaml:"live"`
	Static KindSection `toml:"static" yaml:"static"`
}

// KindSection lists the configurations of one kind. Active is omitted when
// the kind is deactivated.
type KindSection struct {
	Active         *int                 `toml:"active,omitempty" yaml:"active,omitempty"`
	Configurations []ConfigurationEntry `toml:"configurations" yaml:"configurations"`
}

// ConfigurationEntry is one named analyzer configuration.
type ConfigurationEntry struct {
	Name       string          `toml:"name" yaml:"name"`
	Analyzer   string          `toml:"analyzer" yaml:"analyzer"`
	Properties []PropertyEntry `toml:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyEntry is one non-default property value in literal text form.
type PropertyEntry struct {
	ID    string `toml:"id" yaml:"id"`
	Value string `toml:"value" yaml:"value"`
}

// Format encodes documents and decodes them into a generic tree so that each
// section can be validated on its own.
type Format interface {
	Name() string
	Marshal(doc Document) ([]byte, error)
	Unmarshal(data []byte) (map[string]any, error)
}

var (
	// TOML is the default document format.
	TOML Format = tomlFormat{}
	// YAML is used for .yaml and .yml targets.
	YAML Format = yamlFormat{}
)

// FormatFor picks the document format from the extension of path.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return TOML
	}
}

type tomlFormat struct{}

func (tomlFormat) Name() string { return "toml" }

func (tomlFormat) Marshal(doc Document) ([]byte, error) {
	return toml.Marshal(doc)
}

func (tomlFormat) Unmarshal(data []byte) (map[string]any, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return root, nil
}

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Marshal(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

func (yamlFormat) Unmarshal(data []byte) (map[string]any, error) {
	root := map[string]any{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return root, nil
}

// Helpers for walking decoded trees. TOML yields int64 and YAML yields int,
// so numbers are normalized here.

func asTable(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// asText returns the literal text of a scalar. Hand-edited documents may
// carry native numbers or booleans where a string is expected.
func asText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	}
	if n, ok := asInt(v); ok {
		return strconv.Itoa(n), true
	}
	return "", false
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}
