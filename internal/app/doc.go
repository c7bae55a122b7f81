// Package app is the composition root of LIVIA.
//
// # Overview
//
// Run wires settings, logging, the analyzer registry, the frame pipeline,
// the status objects, the configuration store, the key manager and the
// terminal shell, then blocks in the UI until the user quits or the context
// is cancelled.
//
// # Startup
//
//  1. config.Load reads ~/.config/livia/settings.toml (defaults when missing)
//  2. A slog text handler is opened on <log_dir>/livia.log
//  3. prefs.Load reads the theme and the last opened input
//  4. The registry is populated with the built-in analyzer types
//  5. pipeline.New starts with the no-op analyzer; status.New wraps it
//  6. storage.Store loads the configuration document, then auto-saves
//  7. keybind.Manager is attached to the shortcut status on a ui.KeyRouter
//  8. The processor, frame feeder and stats poller start on goroutines
//  9. ui.Run blocks until exit
//
// # Components
//
//   - app.go: Run and log setup
//   - feeder.go: follows Input and Playing and pumps frames into the processor
//   - poller.go: StartPoller, which posts pipeline stats to the UI
//
// # Threading
//
// Status objects are confined to the Bubble Tea update goroutine. The
// feeder and the poller never touch them directly: they read pipeline
// state, which is safe for concurrent use, and post status updates through
// ui.Queue. The feeder mirrors the Playing property into an atomic so the
// feed loop can check it without crossing threads.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Unreadable or malformed settings file
//   - Log directory or file cannot be created
//   - Unreadable configuration document (malformed content is not fatal)
//
// Recoverable errors (logged, surfaced in the status message):
//   - Malformed sections or entries in the configuration document
//   - Frame source failures, retried with exponential backoff
//   - Analyzer failures reported by the pipeline
//   - Auto-save failures
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Input: "pattern:"}); err != nil {
//		log.Fatalf("livia failed: %v", err)
//	}
package app
