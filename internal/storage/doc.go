// Package storage persists shortcut bindings and analyzer configurations.
//
// # Overview
//
// A Store reads a configuration document into a status.Livia aggregate and
// writes the aggregate back. The document has two sections:
//
//	[shortcuts]
//	OPEN_FILE = ['Ctrl+Shift+O']
//
//	[analyzers.live]
//	active = 1
//
//	[[analyzers.live.configurations]]
//	name = 'soft'
//	analyzer = 'grayscale'
//
//	[[analyzers.live.configurations.properties]]
//	id = 'gain'
//	value = '1.5'
//
// Targets ending in .yaml or .yml use the same layout in YAML.
//
// # Sparse Encoding
//
// Only non-default state is written: shortcuts bound to their default keys
// and property overrides whose encoded text equals the encoded default are
// omitted. Hidden properties are never written. Values are stored as
// literal text produced by the analyzer.Converters registry and decoded by
// the declared property type on load. Overrides of analyzer types the
// registry does not know are kept verbatim so they survive a round trip.
//
// # Loading
//
// The document is decoded into a generic tree first, then each section,
// kind, configuration and entry is validated and applied on its own. A bad
// fragment produces a *ParseError that is logged and recorded in Problems;
// the rest of the document still applies. A missing file is not an error.
//
// # Saving
//
// Save always rebuilds the document from the status. The bytes go to a
// temporary file in the target directory which is synced and renamed over
// the target. Saving twice without a change yields identical files.
//
// # Auto-save
//
// EnableAutoSave subscribes to shortcut and analyzer configuration events
// and runs a full Save on each. Events raised while loading are ignored.
package storage
