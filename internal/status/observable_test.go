package status

import (
	"slices"
	"testing"
)

func TestProperty_SetNotifiesOnChangeOnly(t *testing.T) {
	p := NewProperty(nil, 1)

	var got []ChangeEvent[int]
	p.Subscribe(func(e ChangeEvent[int]) { got = append(got, e) })

	if p.Set(1) {
		t.Fatalf("Set(1) reported change, want no-op")
	}
	if !p.Set(2) {
		t.Fatalf("Set(2) reported no change")
	}
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].Old != 1 || got[0].New != 2 {
		t.Fatalf("event = %+v, want 1 -> 2", got[0])
	}
	if p.Get() != 2 {
		t.Fatalf("Get() = %d, want 2", p.Get())
	}
}

func TestProperty_ListenersRunInRegistrationOrder(t *testing.T) {
	p := NewProperty(nil, "")
	var order []string
	p.Subscribe(func(ChangeEvent[string]) { order = append(order, "first") })
	p.Subscribe(func(ChangeEvent[string]) { order = append(order, "second") })

	p.Set("x")
	if !slices.Equal(order, []string{"first", "second"}) {
		t.Fatalf("order = %v, want [first second]", order)
	}
}

func TestProperty_ListenerSeesNewValue(t *testing.T) {
	p := NewProperty(nil, 0)
	var seen int
	p.Subscribe(func(ChangeEvent[int]) { seen = p.Get() })

	p.Set(7)
	if seen != 7 {
		t.Fatalf("value seen by listener = %d, want 7", seen)
	}
}

func TestProperty_UnsubscribeDuringDispatch(t *testing.T) {
	p := NewProperty(nil, 0)
	calls := 0
	var sub Subscription
	sub = p.Subscribe(func(ChangeEvent[int]) {
		calls++
		sub.Unsubscribe()
	})
	second := 0
	p.Subscribe(func(ChangeEvent[int]) { second++ })

	p.Set(1)
	p.Set(2)
	if calls != 1 {
		t.Fatalf("unsubscribed listener calls = %d, want 1", calls)
	}
	if second != 2 {
		t.Fatalf("remaining listener calls = %d, want 2", second)
	}
}

func TestProperty_CustomEquality(t *testing.T) {
	p := NewPropertyFunc(nil, []string{"a"}, slices.Equal[[]string])
	calls := 0
	p.Subscribe(func(ChangeEvent[[]string]) { calls++ })

	p.Set([]string{"a"})
	p.Set([]string{"a", "b"})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestProperty_PanicPropagates(t *testing.T) {
	p := NewProperty(nil, 0)
	p.Subscribe(func(ChangeEvent[int]) { panic("listener failed") })

	defer func() {
		if recover() == nil {
			t.Fatalf("Set did not propagate listener panic")
		}
		if p.Get() != 1 {
			t.Fatalf("Get() = %d, want 1", p.Get())
		}
	}()
	p.Set(1)
}

func TestSubscriptions_UnsubscribeAll(t *testing.T) {
	a := NewProperty(nil, 0)
	b := NewProperty(nil, false)
	calls := 0
	subs := Subscriptions{
		a.Subscribe(func(ChangeEvent[int]) { calls++ }),
		b.Subscribe(func(ChangeEvent[bool]) { calls++ }),
	}
	subs.Unsubscribe()

	a.Set(1)
	b.Set(true)
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestDisplayStatus_Defaults(t *testing.T) {
	d := NewDisplayStatus()
	if d.WindowSize.Get() != DefaultWindowSize {
		t.Fatalf("WindowSize = %+v, want %+v", d.WindowSize.Get(), DefaultWindowSize)
	}
	if d.Fullscreen.Get() {
		t.Fatalf("Fullscreen = true, want false")
	}
	if !d.Resizable.Get() {
		t.Fatalf("Resizable = false, want true")
	}

	d = NewDisplayStatus(WithWindowSize(Size{Width: 120, Height: 40}), WithStatusMessage("ready"))
	if got := d.WindowSize.Get(); got.Width != 120 || got.Height != 40 {
		t.Fatalf("WindowSize = %+v, want 120x40", got)
	}
	if d.StatusMessage.Get() != "ready" {
		t.Fatalf("StatusMessage = %q, want %q", d.StatusMessage.Get(), "ready")
	}
}

func TestDisplayStatus_SourceIsOwner(t *testing.T) {
	d := NewDisplayStatus()
	var source any
	d.Fullscreen.Subscribe(func(e ChangeEvent[bool]) { source = e.Source })

	d.Fullscreen.Set(true)
	if source != d {
		t.Fatalf("event source = %v, want the display status", source)
	}
}
