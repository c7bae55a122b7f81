package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the fixed keys of the shell. Rebindable commands go through
// the KeyRouter instead.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Problems   key.Binding
	Close      key.Binding
	Confirm    key.Binding
	TuneUp     key.Binding
	TuneDown   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Problems: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Recent problems"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		TuneUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Raise detector setting"),
		),
		TuneDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Lower detector setting"),
		),
	}
}

func (k keyMap) fixed() []key.Binding {
	return []key.Binding{k.Help, k.CycleTheme, k.Problems, k.TuneUp, k.TuneDown, k.Close, k.Quit}
}
