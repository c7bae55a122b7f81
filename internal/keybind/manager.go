// Package keybind connects shortcut actions to the key dispatch of a window.
//
// A Manager keeps, per action, the bound key combinations and one live
// Handle per combination on the current Window. Key presses fan out to the
// trigger listeners of the action in registration order. Attach keeps a
// Manager in step with a status.ShortcutStatus.
package keybind

import (
	"slices"

	"github.com/five82/livia/internal/shortcut"
	"github.com/five82/livia/internal/status"
)

// Window is a key dispatch facility scoped to one window. Bind registers fn
// for a key combination until the returned handle is released.
type Window interface {
	Bind(keys string, fn func()) Handle
}

// Handle is one live key registration.
type Handle interface {
	Release()
}

// TriggerEvent reports a key press bound to Action.
type TriggerEvent struct {
	Manager *Manager
	Action  shortcut.Action
	Keys    string
}

// TriggerListener reacts to triggered actions.
type TriggerListener interface {
	ShortcutTriggered(TriggerEvent)
}

// TriggerFunc adapts a function to TriggerListener.
type TriggerFunc func(TriggerEvent)

func (f TriggerFunc) ShortcutTriggered(e TriggerEvent) { f(e) }

type binding struct {
	keys      []string
	handles   map[string]Handle
	listeners status.Listeners[TriggerListener]
}

// Manager binds actions to key combinations on a window. It is not safe for
// concurrent use; call it from the control thread.
type Manager struct {
	window   Window
	bindings map[shortcut.Action]*binding
}

// NewManager returns a manager dispatching on w. w may be nil.
func NewManager(w Window) *Manager {
	return &Manager{window: w, bindings: make(map[shortcut.Action]*binding)}
}

// Window returns the current window.
func (m *Manager) Window() Window {
	return m.window
}

// SetWindow detaches every key from the current window and attaches them to
// w. A nil window leaves all actions unbound until a window is set.
func (m *Manager) SetWindow(w Window) {
	for _, b := range m.bindings {
		for _, k := range b.keys {
			m.detach(b, k)
		}
	}
	m.window = w
	for a, b := range m.bindings {
		for _, k := range b.keys {
			m.attach(a, b, k)
		}
	}
}

// Has reports whether a has a binding.
func (m *Manager) Has(a shortcut.Action) bool {
	_, ok := m.bindings[a]
	return ok
}

// Keys returns the combinations bound to a.
func (m *Manager) Keys(a shortcut.Action) []string {
	b, ok := m.bindings[a]
	if !ok {
		return nil
	}
	return slices.Clone(b.keys)
}

// Actions returns the bound actions in declared order.
func (m *Manager) Actions() []shortcut.Action {
	out := make([]shortcut.Action, 0, len(m.bindings))
	for a := range m.bindings {
		out = append(out, a)
	}
	shortcut.SortActions(out)
	return out
}

// AddShortcut binds additional keys to a, creating the binding if needed.
// Keys that are already bound are left alone.
func (m *Manager) AddShortcut(a shortcut.Action, keys ...string) {
	b := m.binding(a)
	m.apply(a, b, shortcut.NormalizeSet(append(slices.Clone(b.keys), keys...)))
}

// SetShortcut replaces the keys bound to a, creating the binding if needed.
// Nothing is re-attached when the key set is unchanged.
func (m *Manager) SetShortcut(a shortcut.Action, keys ...string) {
	b := m.binding(a)
	next := shortcut.NormalizeSet(keys)
	if shortcut.SameSet(b.keys, next) {
		return
	}
	m.apply(a, b, next)
}

// RemoveShortcut unbinds keys from a. Without keys, or once no key is left,
// the whole binding is dropped together with its trigger listeners.
func (m *Manager) RemoveShortcut(a shortcut.Action, keys ...string) error {
	b, ok := m.bindings[a]
	if !ok {
		return &shortcut.UnknownActionError{Actions: []shortcut.Action{a}}
	}
	if len(keys) > 0 {
		next := make([]string, 0, len(b.keys))
		for _, k := range b.keys {
			if !slices.Contains(keys, k) {
				next = append(next, k)
			}
		}
		m.apply(a, b, next)
		if len(next) > 0 {
			return nil
		}
	}
	for _, k := range b.keys {
		m.detach(b, k)
	}
	delete(m.bindings, a)
	return nil
}

// AddTriggerListener registers l for key presses of a.
func (m *Manager) AddTriggerListener(a shortcut.Action, l TriggerListener) (status.Subscription, error) {
	b, ok := m.bindings[a]
	if !ok {
		return nil, &shortcut.UnknownActionError{Actions: []shortcut.Action{a}}
	}
	return b.listeners.Add(l), nil
}

// Trigger notifies the listeners of a as if keys had been pressed.
func (m *Manager) Trigger(a shortcut.Action, keys string) {
	b, ok := m.bindings[a]
	if !ok {
		return
	}
	event := TriggerEvent{Manager: m, Action: a, Keys: keys}
	b.listeners.Each(func(l TriggerListener) { l.ShortcutTriggered(event) })
}

// Attach binds every action of s and follows its changes.
func (m *Manager) Attach(s *status.ShortcutStatus) status.Subscription {
	for _, a := range s.Actions() {
		m.SetShortcut(a, s.Keys(a)...)
	}
	return s.AddListener(m)
}

// ShortcutAdded implements status.ShortcutListener.
func (m *Manager) ShortcutAdded(e status.ShortcutEvent) {
	m.AddShortcut(e.Action, e.New...)
}

// ShortcutModified implements status.ShortcutListener.
func (m *Manager) ShortcutModified(e status.ShortcutEvent) {
	m.SetShortcut(e.Action, e.New...)
}

// ShortcutRemoved implements status.ShortcutListener.
func (m *Manager) ShortcutRemoved(e status.ShortcutEvent) {
	_ = m.RemoveShortcut(e.Action)
}

func (m *Manager) binding(a shortcut.Action) *binding {
	b, ok := m.bindings[a]
	if !ok {
		b = &binding{handles: make(map[string]Handle)}
		m.bindings[a] = b
	}
	return b
}

// apply moves b to next, detaching removed keys and attaching new ones.
func (m *Manager) apply(a shortcut.Action, b *binding, next []string) {
	for _, k := range b.keys {
		if !slices.Contains(next, k) {
			m.detach(b, k)
		}
	}
	for _, k := range next {
		m.attach(a, b, k)
	}
	b.keys = next
}

func (m *Manager) attach(a shortcut.Action, b *binding, keys string) {
	if m.window == nil {
		return
	}
	if _, ok := b.handles[keys]; ok {
		return
	}
	b.handles[keys] = m.window.Bind(keys, func() { m.Trigger(a, keys) })
}

func (m *Manager) detach(b *binding, keys string) {
	h, ok := b.handles[keys]
	if !ok {
		return
	}
	delete(b.handles, keys)
	if h != nil {
		h.Release()
	}
}
