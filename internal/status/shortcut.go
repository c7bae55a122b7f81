package status

import (
	"slices"

	"github.com/five82/livia/internal/shortcut"
)

// ShortcutEvent describes a change of one action's key binding. Old is nil for
// additions and New is nil for removals.
type ShortcutEvent struct {
	Source *ShortcutStatus
	Action shortcut.Action
	Old    []string
	New    []string
}

// ShortcutListener reacts to shortcut binding changes.
type ShortcutListener interface {
	ShortcutAdded(ShortcutEvent)
	ShortcutModified(ShortcutEvent)
	ShortcutRemoved(ShortcutEvent)
}

// ShortcutListenerFuncs adapts plain functions to ShortcutListener. Nil
// fields are ignored.
type ShortcutListenerFuncs struct {
	Added    func(ShortcutEvent)
	Modified func(ShortcutEvent)
	Removed  func(ShortcutEvent)
}

func (f ShortcutListenerFuncs) ShortcutAdded(e ShortcutEvent) {
	if f.Added != nil {
		f.Added(e)
	}
}

func (f ShortcutListenerFuncs) ShortcutModified(e ShortcutEvent) {
	if f.Modified != nil {
		f.Modified(e)
	}
}

func (f ShortcutListenerFuncs) ShortcutRemoved(e ShortcutEvent) {
	if f.Removed != nil {
		f.Removed(e)
	}
}

// ShortcutStatus maps actions to their bound key combinations.
type ShortcutStatus struct {
	keys      map[shortcut.Action][]string
	listeners Listeners[ShortcutListener]
}

// NewShortcutStatus returns a status seeded with the default keys of the given
// actions, or of every declared action when none are given.
func NewShortcutStatus(actions ...shortcut.Action) *ShortcutStatus {
	if len(actions) == 0 {
		actions = shortcut.Actions()
	}
	s := &ShortcutStatus{keys: make(map[shortcut.Action][]string, len(actions))}
	for _, a := range actions {
		s.keys[a] = a.DefaultKeys()
	}
	return s
}

// AddListener registers l for added, modified and removed events.
func (s *ShortcutStatus) AddListener(l ShortcutListener) Subscription {
	return s.listeners.Add(l)
}

// Has reports whether a is registered.
func (s *ShortcutStatus) Has(a shortcut.Action) bool {
	_, ok := s.keys[a]
	return ok
}

// Keys returns a copy of the keys bound to a, or nil when a is not registered.
func (s *ShortcutStatus) Keys(a shortcut.Action) []string {
	keys, ok := s.keys[a]
	if !ok {
		return nil
	}
	return slices.Clone(keys)
}

// IsDefault reports whether a is bound to exactly its default keys.
func (s *ShortcutStatus) IsDefault(a shortcut.Action) bool {
	keys, ok := s.keys[a]
	return ok && shortcut.SameSet(keys, a.DefaultKeys())
}

// Shortcuts returns a copy of every binding.
func (s *ShortcutStatus) Shortcuts() map[shortcut.Action][]string {
	out := make(map[shortcut.Action][]string, len(s.keys))
	for a, keys := range s.keys {
		out[a] = slices.Clone(keys)
	}
	return out
}

// Actions returns the registered actions in declared order.
func (s *ShortcutStatus) Actions() []shortcut.Action {
	out := make([]shortcut.Action, 0, len(s.keys))
	for a := range s.keys {
		out = append(out, a)
	}
	shortcut.SortActions(out)
	return out
}

// Groups returns the groups of the registered actions in display order.
func (s *ShortcutStatus) Groups() []string {
	return shortcut.Groups(s.Actions())
}

// ActionsByGroup returns the registered actions of group in declared order.
func (s *ShortcutStatus) ActionsByGroup(group string) []shortcut.Action {
	var out []shortcut.Action
	for _, a := range s.Actions() {
		if a.Group() == group {
			out = append(out, a)
		}
	}
	return out
}

// AddAction registers a with keys and fires an added event.
func (s *ShortcutStatus) AddAction(a shortcut.Action, keys ...string) error {
	if _, ok := s.keys[a]; ok {
		return &shortcut.ActionAlreadyRegisteredError{Action: a}
	}
	bound := shortcut.NormalizeSet(keys)
	s.keys[a] = bound

	event := ShortcutEvent{Source: s, Action: a, New: slices.Clone(bound)}
	s.listeners.Each(func(l ShortcutListener) { l.ShortcutAdded(event) })
	return nil
}

// RemoveAction unregisters a and fires a removed event.
func (s *ShortcutStatus) RemoveAction(a shortcut.Action) error {
	old, ok := s.keys[a]
	if !ok {
		return &shortcut.UnknownActionError{Actions: []shortcut.Action{a}}
	}
	delete(s.keys, a)

	event := ShortcutEvent{Source: s, Action: a, Old: old}
	s.listeners.Each(func(l ShortcutListener) { l.ShortcutRemoved(event) })
	return nil
}

// SetKeys replaces the keys bound to a.
func (s *ShortcutStatus) SetKeys(a shortcut.Action, keys ...string) error {
	return s.modify(a, func([]string) []string {
		return shortcut.NormalizeSet(keys)
	})
}

// AddKeys binds additional keys to a.
func (s *ShortcutStatus) AddKeys(a shortcut.Action, keys ...string) error {
	return s.modify(a, func(current []string) []string {
		return shortcut.NormalizeSet(append(slices.Clone(current), keys...))
	})
}

// RemoveKeys unbinds keys from a. The action stays registered even when no
// key is left.
func (s *ShortcutStatus) RemoveKeys(a shortcut.Action, keys ...string) error {
	return s.modify(a, func(current []string) []string {
		out := make([]string, 0, len(current))
		for _, k := range current {
			if !slices.Contains(keys, k) {
				out = append(out, k)
			}
		}
		return out
	})
}

func (s *ShortcutStatus) modify(a shortcut.Action, next func([]string) []string) error {
	old, ok := s.keys[a]
	if !ok {
		return &shortcut.UnknownActionError{Actions: []shortcut.Action{a}}
	}
	updated := next(old)
	if shortcut.SameSet(old, updated) {
		return nil
	}
	s.keys[a] = updated

	event := ShortcutEvent{Source: s, Action: a, Old: slices.Clone(old), New: slices.Clone(updated)}
	s.listeners.Each(func(l ShortcutListener) { l.ShortcutModified(event) })
	return nil
}
