package storage

import (
	"errors"
	"fmt"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/status"
)

// encodeKind returns the section for kind. Overrides equal to the property
// default and hidden properties are left out.
func (st *Store) encodeKind(kind status.Kind) KindSection {
	fp := st.status.FrameProcessing
	section := KindSection{Configurations: []ConfigurationEntry{}}
	if idx := fp.ActiveIndex(kind); idx >= 0 {
		section.Active = &idx
	}
	for _, cfg := range fp.Configurations(kind) {
		section.Configurations = append(section.Configurations, st.encodeConfiguration(kind, cfg))
	}
	return section
}

func (st *Store) encodeConfiguration(kind status.Kind, cfg status.AnalyzerConfiguration) ConfigurationEntry {
	entry := ConfigurationEntry{Name: cfg.Name, Analyzer: cfg.Analyzer}

	meta, err := st.registry.Lookup(cfg.Analyzer)
	if err != nil {
		// Unknown type: keep whatever was loaded so it survives the round trip.
		for _, o := range cfg.Overrides {
			var encErr error
			text, ok := o.Value.(string)
			if !ok {
				text, encErr = st.converters.Encode(analyzer.TypeAny, o.Value)
			}
			if encErr != nil {
				st.logger.Warn("skip unencodable property", "kind", kind.String(), "configuration", cfg.Name, "property", o.Property, "error", encErr)
				continue
			}
			entry.Properties = append(entry.Properties, PropertyEntry{ID: o.Property, Value: text})
		}
		return entry
	}

	for _, o := range cfg.Overrides {
		prop, ok := meta.Property(o.Property)
		if !ok || prop.Hidden {
			continue
		}
		text, err := st.converters.Encode(prop.Type, o.Value)
		if err != nil {
			st.logger.Warn("skip unencodable property", "kind", kind.String(), "configuration", cfg.Name, "property", o.Property, "error", err)
			continue
		}
		if def, err := st.converters.Encode(prop.Type, prop.Default); err == nil && def == text {
			continue
		}
		entry.Properties = append(entry.Properties, PropertyEntry{ID: o.Property, Value: text})
	}
	return entry
}

// decodeKind applies one kind section. A section that is not a table leaves
// the kind untouched; a malformed configuration or property is skipped. The
// active index follows the entry it named, and the kind is deactivated when
// that entry was skipped.
func (st *Store) decodeKind(path string, kind status.Kind, v any) []error {
	where := "analyzers." + kind.String()
	if v == nil {
		return nil
	}
	table, ok := asTable(v)
	if !ok {
		return []error{&ParseError{Path: path, Section: where, Err: fmt.Errorf("want a table, got %s", describe(v))}}
	}

	var problems []error
	var list []status.AnalyzerConfiguration
	// kept maps a position in the document to a position in list.
	kept := map[int]int{}
	entries := 0
	if raw, present := table["configurations"]; present {
		items, ok := asList(raw)
		if !ok {
			return []error{&ParseError{Path: path, Section: where + ".configurations", Err: fmt.Errorf("want a list, got %s", describe(raw))}}
		}
		entries = len(items)
		for i, item := range items {
			cfg, errs := st.decodeConfiguration(path, fmt.Sprintf("%s.configurations[%d]", where, i), item)
			problems = append(problems, errs...)
			if cfg != nil {
				kept[i] = len(list)
				list = append(list, *cfg)
			}
		}
	}

	active := status.NoConfiguration
	if raw, present := table["active"]; present {
		n, ok := asInt(raw)
		if !ok {
			problems = append(problems, &ParseError{Path: path, Section: where + ".active", Err: fmt.Errorf("want an integer, got %s", describe(raw))})
		} else {
			active = n
		}
	}
	if active >= 0 && active < entries {
		if i, ok := kept[active]; ok {
			active = i
		} else {
			problems = append(problems, &ParseError{Path: path, Section: where + ".active",
				Err: fmt.Errorf("active configuration %d was skipped", active)})
			active = status.NoConfiguration
		}
	}

	if err := st.status.FrameProcessing.SetConfigurationsAt(kind, list, active); err != nil {
		problems = append(problems, fmt.Errorf("apply %s: %w", where, err))
	}
	return problems
}

func (st *Store) decodeConfiguration(path, where string, v any) (*status.AnalyzerConfiguration, []error) {
	table, ok := asTable(v)
	if !ok {
		return nil, []error{&ParseError{Path: path, Section: where, Err: fmt.Errorf("want a table, got %s", describe(v))}}
	}
	typeID, _ := table["analyzer"].(string)
	if typeID == "" {
		return nil, []error{&ParseError{Path: path, Section: where, Err: errors.New("missing analyzer type")}}
	}
	name, _ := asText(table["name"])

	var problems []error
	var overrides []status.Override

	meta, lookupErr := st.registry.Lookup(typeID)
	if lookupErr != nil {
		st.logger.Warn("keeping configuration of unknown analyzer type", "path", path, "configuration", name, "type", typeID)
	}

	if raw, present := table["properties"]; present {
		items, ok := asList(raw)
		if !ok {
			problems = append(problems, &ParseError{Path: path, Section: where + ".properties", Err: fmt.Errorf("want a list, got %s", describe(raw))})
		}
		for i, item := range items {
			at := fmt.Sprintf("%s.properties[%d]", where, i)
			id, text, err := decodePropertyEntry(item)
			if err != nil {
				problems = append(problems, &ParseError{Path: path, Section: at, Err: err})
				continue
			}
			if lookupErr != nil {
				overrides = append(overrides, status.Override{Property: id, Value: text})
				continue
			}
			prop, ok := meta.Property(id)
			if !ok {
				st.logger.Warn("ignoring unknown analyzer property", "path", path, "configuration", name, "type", typeID, "property", id)
				continue
			}
			value, err := st.converters.Decode(prop.Type, text)
			if err != nil {
				problems = append(problems, &ParseError{Path: path, Section: at, Err: err})
				continue
			}
			overrides = append(overrides, status.Override{Property: id, Value: value})
		}
	}

	cfg := status.NewAnalyzerConfiguration(name, typeID, overrides...)
	return &cfg, problems
}

func decodePropertyEntry(v any) (string, string, error) {
	table, ok := asTable(v)
	if !ok {
		return "", "", fmt.Errorf("want a table, got %s", describe(v))
	}
	id, _ := table["id"].(string)
	if id == "" {
		return "", "", errors.New("missing property id")
	}
	text, ok := asText(table["value"])
	if !ok {
		return "", "", fmt.Errorf("property %q: want a literal value, got %s", id, describe(table["value"]))
	}
	return id, text, nil
}
