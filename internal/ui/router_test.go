package ui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalizeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ctrl+O", "ctrl+o"},
		{"P", "p"},
		{"p", "p"},
		{"Shift+P", "P"},
		{"Alt+S", "alt+s"},
		{"Ctrl+Shift+O", "ctrl+shift+o"},
		{"shift+ctrl+o", "ctrl+shift+o"},
		{" Alt + D ", "alt+d"},
		{"Space", " "},
		{"Escape", "esc"},
		{"PageDown", "pgdown"},
		{"F5", "f5"},
		{"Ctrl++", "ctrl++"},
		{"+", "+"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeKeys(tt.in); got != tt.want {
				t.Fatalf("NormalizeKeys(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyRouter_DispatchInBindOrder(t *testing.T) {
	r := NewKeyRouter()
	var calls []string
	r.Bind("P", func() { calls = append(calls, "first") })
	r.Bind("p", func() { calls = append(calls, "second") })
	r.Bind("Alt+P", func() { calls = append(calls, "alt") })

	if !r.Dispatch(runes("p")) {
		t.Fatal("Dispatch(p) = false, want true")
	}
	if want := []string{"first", "second"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if r.Dispatch(runes("q")) {
		t.Fatal("Dispatch(q) = true, want false")
	}
}

func TestKeyRouter_Release(t *testing.T) {
	r := NewKeyRouter()
	count := 0
	h := r.Bind("Ctrl+O", func() { count++ })

	r.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlO})
	h.Release()
	h.Release()
	r.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlO})

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestKeyRouter_ReleaseDuringDispatch(t *testing.T) {
	r := NewKeyRouter()
	ran := false
	var second interface{ Release() }
	r.Bind("D", func() { second.Release() })
	second = r.Bind("D", func() { ran = true })

	r.Dispatch(runes("d"))
	if ran {
		t.Fatal("released binding ran during the same dispatch")
	}
}
