package storage

import (
	"fmt"
	"slices"

	"github.com/five82/livia/internal/shortcut"
	"github.com/five82/livia/internal/status"
)

// encodeShortcuts returns the bindings that differ from their defaults,
// keyed by action name.
func encodeShortcuts(s *status.ShortcutStatus) map[string][]string {
	out := make(map[string][]string)
	for _, a := range s.Actions() {
		if s.IsDefault(a) {
			continue
		}
		keys := s.Keys(a)
		if keys == nil {
			keys = []string{}
		}
		out[a.String()] = keys
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// decodeShortcuts applies the shortcuts section to s. Actions missing from
// the section keep their current keys. Each entry is applied on its own;
// the returned errors describe the entries that were skipped.
func (st *Store) decodeShortcuts(path string, section any, s *status.ShortcutStatus) []error {
	if section == nil {
		return nil
	}
	table, ok := asTable(section)
	if !ok {
		return []error{&ParseError{Path: path, Section: "shortcuts", Err: fmt.Errorf("want a table, got %s", describe(section))}}
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	slices.Sort(names)

	var problems []error
	for _, name := range names {
		where := "shortcuts." + name
		a, ok := shortcut.ParseAction(name)
		if !ok {
			st.logger.Warn("ignoring unknown shortcut action", "path", path, "action", name)
			continue
		}
		keys, err := decodeKeys(table[name])
		if err != nil {
			problems = append(problems, &ParseError{Path: path, Section: where, Err: err})
			continue
		}
		if !s.Has(a) {
			err = s.AddAction(a, keys...)
		} else {
			err = s.SetKeys(a, keys...)
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("apply %s: %w", where, err))
		}
	}
	return problems
}

func decodeKeys(v any) ([]string, error) {
	if s, ok := v.(string); ok {
		return []string{s}, nil
	}
	list, ok := asList(v)
	if !ok {
		return nil, fmt.Errorf("want a list of key combinations, got %s", describe(v))
	}
	keys := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("key %d: want a string, got %s", i, describe(item))
		}
		keys = append(keys, s)
	}
	return keys, nil
}
