package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/livia/internal/keybind"
)

// namedKeys maps key names used in shortcut documents to the names Bubble
// Tea reports in tea.KeyMsg.String.
var namedKeys = map[string]string{
	"space":     " ",
	"return":    "enter",
	"enter":     "enter",
	"escape":    "esc",
	"esc":       "esc",
	"tab":       "tab",
	"backspace": "backspace",
	"delete":    "delete",
	"del":       "delete",
	"insert":    "insert",
	"home":      "home",
	"end":       "end",
	"pgup":      "pgup",
	"pageup":    "pgup",
	"pgdown":    "pgdown",
	"pagedown":  "pgdown",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
}

// NormalizeKeys converts a combination such as "Ctrl+Shift+O" to the string
// Bubble Tea reports for it. Modifiers are lower-cased and ordered ctrl, alt,
// shift. A plain letter is lower-case; Shift+letter is the upper-case
// letter, since terminals report shifted letters that way.
func NormalizeKeys(combo string) string {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return ""
	}
	if combo == "+" {
		return "+"
	}

	parts := strings.Split(combo, "+")
	name := parts[len(parts)-1]
	if name == "" && len(parts) > 1 {
		// "Ctrl++" names the plus key.
		name = "+"
		parts = parts[:len(parts)-1]
	}

	var ctrl, alt, shift bool
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control", "meta", "cmd":
			ctrl = true
		case "alt", "option":
			alt = true
		case "shift":
			shift = true
		}
	}

	name = strings.TrimSpace(name)
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsLetter(r) {
		if shift && !ctrl && !alt {
			name = string(unicode.ToUpper(r))
			shift = false
		} else {
			name = string(unicode.ToLower(r))
		}
	} else if mapped, ok := namedKeys[strings.ToLower(name)]; ok {
		name = mapped
	} else {
		name = strings.ToLower(name)
	}

	var b strings.Builder
	if ctrl {
		b.WriteString("ctrl+")
	}
	if alt {
		b.WriteString("alt+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(name)
	return b.String()
}

type route struct {
	binding key.Binding
	fn      func()
}

// KeyRouter is the key dispatch facility of the terminal window. It hands
// key presses to the functions bound through Bind. It is only used from the
// Bubble Tea update loop.
type KeyRouter struct {
	routes map[*route]struct{}
	order  []*route
}

// NewKeyRouter returns an empty router.
func NewKeyRouter() *KeyRouter {
	return &KeyRouter{routes: make(map[*route]struct{})}
}

type routeHandle struct {
	router *KeyRouter
	route  *route
}

func (h routeHandle) Release() {
	h.router.release(h.route)
}

// Bind registers fn for the key combination keys.
func (r *KeyRouter) Bind(keys string, fn func()) keybind.Handle {
	normalized := NormalizeKeys(keys)
	rt := &route{
		binding: key.NewBinding(
			key.WithKeys(normalized),
			key.WithHelp(keys, ""),
		),
		fn: fn,
	}
	r.routes[rt] = struct{}{}
	r.order = append(r.order, rt)
	return routeHandle{router: r, route: rt}
}

func (r *KeyRouter) release(rt *route) {
	if _, ok := r.routes[rt]; !ok {
		return
	}
	delete(r.routes, rt)
	for i, other := range r.order {
		if other == rt {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
}

// Dispatch runs every function bound to msg in bind order and reports
// whether any matched.
func (r *KeyRouter) Dispatch(msg tea.KeyMsg) bool {
	snapshot := append([]*route(nil), r.order...)
	matched := false
	for _, rt := range snapshot {
		if _, live := r.routes[rt]; !live {
			continue
		}
		if key.Matches(msg, rt.binding) {
			matched = true
			rt.fn()
		}
	}
	return matched
}

// Len returns the number of live bindings.
func (r *KeyRouter) Len() int {
	return len(r.order)
}
