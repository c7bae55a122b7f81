// Package ui provides the Bubble Tea terminal shell for LIVIA.
//
// # Overview
//
// The shell is a thin view over the status objects in package status. It
// renders the current input, the live (detection) and static
// (classification) configuration lists, pipeline statistics and the status
// message, and turns key presses into commands.
//
// # Package Structure
//
//   - model.go: Model, Options, the Update loop and Run
//   - commands.go: what each shortcut action does when triggered
//   - router.go: KeyRouter, the key dispatch facility used by keybind.Manager
//   - queue.go: Queue, the hand-off from worker goroutines to the update loop
//   - view.go: header, configuration panels, stats line and footer
//   - help.go: help and shortcut overlays
//   - theme.go: color palettes and lipgloss styles
//   - keys.go: fixed keys that are not rebindable
//
// # Key Handling
//
// Rebindable actions are owned by status.ShortcutStatus. A keybind.Manager
// attached to it binds every combination on a KeyRouter; the router
// normalizes combinations such as "Ctrl+O" or "Alt+D" to Bubble Tea key
// strings with NormalizeKeys. On each tea.KeyMsg the model first handles its
// fixed keys (quit, help, theme, tuning, overlay close) and then calls
// KeyRouter.Dispatch, which fires the trigger listeners registered in
// commands.go.
//
// # Threading
//
// Status objects are not safe for concurrent use. Everything in this
// package runs on the Bubble Tea update goroutine, which acts as the
// control thread. Other goroutines hand work over with Queue.Post; the
// model drains one task per message and re-arms Queue.Wait.
//
// # Key Bindings
//
//   - ?: Toggle help
//   - T: Cycle theme (saved to the preferences file)
//   - L: Recent warnings and errors from the log file
//   - + / -: Step the first numeric setting of the active detector
//   - esc: Close overlay or prompt
//   - ctrl+c: Quit
//
// The defaults of the rebindable actions are listed in package shortcut.
package ui
