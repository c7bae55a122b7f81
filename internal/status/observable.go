package status

// ChangeEvent records one transition of an observable value.
type ChangeEvent[T any] struct {
	Source any
	Old    T
	New    T
}

// Subscription removes a registered listener.
type Subscription interface {
	Unsubscribe()
}

type subscriptionFunc func()

func (f subscriptionFunc) Unsubscribe() { f() }

// Subscriptions groups several subscriptions so they can be released together.
type Subscriptions []Subscription

// Unsubscribe releases every subscription in the group.
func (s Subscriptions) Unsubscribe() {
	for _, sub := range s {
		sub.Unsubscribe()
	}
}

// Listeners is an ordered listener list. Notification iterates a snapshot,
// so listeners added or removed during dispatch take effect on the next call.
type Listeners[L any] struct {
	nextID  uint64
	entries []listenerEntry[L]
}

type listenerEntry[L any] struct {
	id       uint64
	listener L
}

// Add appends l and returns its subscription.
func (ls *Listeners[L]) Add(l L) Subscription {
	ls.nextID++
	id := ls.nextID
	ls.entries = append(ls.entries, listenerEntry[L]{id: id, listener: l})
	return subscriptionFunc(func() { ls.remove(id) })
}

// Len returns the number of registered listeners.
func (ls *Listeners[L]) Len() int {
	return len(ls.entries)
}

// Each calls fn for every listener in registration order.
func (ls *Listeners[L]) Each(fn func(L)) {
	snapshot := make([]listenerEntry[L], len(ls.entries))
	copy(snapshot, ls.entries)
	for _, e := range snapshot {
		fn(e.listener)
	}
}

func (ls *Listeners[L]) remove(id uint64) {
	for i, e := range ls.entries {
		if e.id == id {
			ls.entries = append(ls.entries[:i:i], ls.entries[i+1:]...)
			return
		}
	}
}

// Property is an observable value. Set notifies listeners synchronously, in
// registration order, and only when the value actually changes. A panic in a
// listener propagates to the caller of Set.
type Property[T any] struct {
	source    any
	value     T
	equal     func(a, b T) bool
	listeners Listeners[func(ChangeEvent[T])]
}

// NewProperty returns a property compared with ==.
func NewProperty[T comparable](source any, initial T) *Property[T] {
	return NewPropertyFunc(source, initial, func(a, b T) bool { return a == b })
}

// NewPropertyFunc returns a property compared with equal, for values that are
// not comparable with ==.
func NewPropertyFunc[T any](source any, initial T, equal func(a, b T) bool) *Property[T] {
	return &Property[T]{source: source, value: initial, equal: equal}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v and notifies listeners. It reports whether the value changed.
func (p *Property[T]) Set(v T) bool {
	if p.equal(p.value, v) {
		return false
	}
	old := p.value
	p.value = v

	event := ChangeEvent[T]{Source: p.source, Old: old, New: v}
	p.listeners.Each(func(fn func(ChangeEvent[T])) { fn(event) })
	return true
}

// Subscribe registers fn to be called on every change.
func (p *Property[T]) Subscribe(fn func(ChangeEvent[T])) Subscription {
	return p.listeners.Add(fn)
}
