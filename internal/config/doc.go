// Package config loads LIVIA's startup settings and resolves its file paths.
//
// # Settings Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/livia/settings.toml (default)
//  3. If the settings file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Settings file: ~/.config/livia/settings.toml
//   - Configuration document: ~/.config/livia/config.toml
//   - Log directory: ~/.local/share/livia/logs
//   - Log file: <log_dir>/livia.log
//   - Log level: info
//   - Frame interval: 100ms (never below 10ms)
//
// # TOML Format
//
//	document = "~/livia/session.yaml"
//	log_dir = "~/.cache/livia"
//	log_level = "debug"
//	frame_interval_ms = 40
//
// All fields are optional. Tilde expansion is performed automatically.
//
// The settings file is read-only for LIVIA. Shortcut bindings and analyzer
// configurations live in the separate configuration document, which package
// storage reads and rewrites.
//
// # Path Expansion
//
//   - Absolute paths: Used as-is ("/var/lib/livia/config.toml")
//   - Tilde paths: Expanded to home directory ("~/.config/livia")
//   - Relative paths: Converted to absolute based on current directory
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML syntax errors and unknown log levels
package config
