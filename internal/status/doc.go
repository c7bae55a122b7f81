// Package status holds the observable state of a LIVIA session.
//
// # Overview
//
// Every piece of UI and pipeline state that other components react to lives
// here: window flags, key bindings, the analyzer configurations of the live
// and static kinds, and the selected input. Observers subscribe to changes
// instead of polling.
//
// # Core Types
//
// Property[T]:
//   - Single observable value with Get/Set
//   - Set is a no-op when the value is unchanged
//   - Listeners run synchronously in registration order
//
// DisplayStatus:
//   - Window size, fullscreen, resizable and status message properties
//
// ShortcutStatus:
//   - Action to key set map seeded from the default action table
//   - Fires added, modified and removed events through ShortcutListener
//
// FrameProcessingStatus:
//   - Configuration list and active index per Kind
//   - Rebuilds the analyzer on selection and swaps it into the Pipeline
//   - Fires events through FrameProcessingListener
//
// Livia:
//   - Aggregate handed to the store, the key manager and the UI
//
// # Threading
//
// Nothing in this package locks. All setters must be called from the control
// thread (the Bubble Tea update loop in the app). Goroutines that need to
// change state post a closure to ui.Queue instead. The pipeline is the only
// collaborator running elsewhere, and its contract is limited to an atomic
// ReplaceAnalyzer.
//
// # Analyzer Rebuild
//
// Selecting configuration i of a kind resolves its type in the registry,
// instantiates it, copies property values from the current instance when the
// type is the same, then applies the configuration's overrides:
//
//	live:   [a:blur] [b:blur] [c:edge]
//	          index 0 → 1     carry-over from a, then b's overrides
//	          index 1 → 2     fresh edge defaults, then c's overrides
//
// When the type cannot be resolved the error is logged and returned and
// nothing changes: the index, the wired analyzer and the listeners all see
// the previous state.
//
// The live analyzer is only wired into the pipeline while live analysis is
// activated. Deactivate swaps in analyzer.NoOp and keeps the selection, so
// Activate restores it without a rebuild.
//
// # Event Order
//
// A successful selection fires ActiveIndexChanged (when the index moved)
// then AnalyzerChanged. Replacing a configuration list fires
// ConfigurationsChanged before any index change it causes.
package status
