package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/status"
)

// Store keeps a configuration document in sync with a status aggregate.
// It is not safe for concurrent use; call it from the control thread.
type Store struct {
	status     *status.Livia
	registry   *analyzer.Registry
	converters *analyzer.Converters
	target     string
	format     Format
	logger     *slog.Logger

	loading  bool
	autoSave status.Subscription
	problems []error
}

// Option customizes a Store.
type Option func(*Store)

// WithTarget sets the document path used by Load and Save.
func WithTarget(path string) Option {
	return func(s *Store) { s.target = path }
}

// WithLogger sets the logger for recovered load problems and auto-save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFormat forces a document format instead of choosing it from the
// target extension.
func WithFormat(f Format) Option {
	return func(s *Store) { s.format = f }
}

// New returns a store for st. A nil registry falls back to the one the frame
// processing status resolves with, and nil converters to the built-ins.
func New(st *status.Livia, registry *analyzer.Registry, converters *analyzer.Converters, opts ...Option) *Store {
	s := &Store{
		status:     st,
		registry:   registry,
		converters: converters,
		logger:     slog.Default(),
	}
	if s.registry == nil {
		s.registry = st.FrameProcessing.Registry()
	}
	if s.converters == nil {
		s.converters = analyzer.NewConverters()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target returns the document path.
func (s *Store) Target() string {
	return s.target
}

// SetTarget changes the document path.
func (s *Store) SetTarget(path string) {
	s.target = path
}

// Problems returns the recovered errors of the last load.
func (s *Store) Problems() []error {
	return append([]error(nil), s.problems...)
}

// Load reads the target document into the status.
func (s *Store) Load() error {
	return s.LoadFrom(s.target)
}

// LoadFrom reads the document at path into the status. A missing file is
// logged and leaves the status untouched. Malformed sections, configurations
// and entries are logged, recorded in Problems and skipped; everything else
// is still applied. Auto-save is suppressed while loading.
func (s *Store) LoadFrom(path string) error {
	if path == "" {
		return ErrMissingTarget
	}
	s.problems = nil

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("configuration file not found, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("read configuration: %w", err)
	}

	root, err := s.formatFor(path).Unmarshal(data)
	if err != nil {
		s.report(&ParseError{Path: path, Err: err})
		return nil
	}

	s.loading = true
	defer func() { s.loading = false }()

	for _, p := range s.decodeShortcuts(path, root["shortcuts"], s.status.Shortcuts) {
		s.report(p)
	}

	if raw, present := root["analyzers"]; present {
		analyzers, ok := asTable(raw)
		if !ok {
			s.report(&ParseError{Path: path, Section: "analyzers", Err: fmt.Errorf("want a table, got %s", describe(raw))})
			return nil
		}
		for _, kind := range status.Kinds() {
			for _, p := range s.decodeKind(path, kind, analyzers[kind.String()]) {
				s.report(p)
			}
		}
	}

	s.logger.Debug("configuration loaded", "path", path, "problems", len(s.problems))
	return nil
}

func (s *Store) report(err error) {
	s.problems = append(s.problems, err)
	s.logger.Warn("configuration problem", "error", err)
}

// Document builds the document for the current status.
func (s *Store) Document() Document {
	return Document{
		Shortcuts: encodeShortcuts(s.status.Shortcuts),
		Analyzers: AnalyzersSection{
			Live:   s.encodeKind(status.KindLive),
			Static: s.encodeKind(status.KindStatic),
		},
	}
}

// Save writes the current status to the target.
func (s *Store) Save() error {
	return s.SaveTo(s.target)
}

// SaveTo writes the current status to path through a sibling temporary file
// that is renamed over path, so readers never see a partial document.
func (s *Store) SaveTo(path string) error {
	if path == "" {
		return ErrMissingTarget
	}
	data, err := s.formatFor(path).Marshal(s.Document())
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	return nil
}

// EnableAutoSave saves the whole document after every shortcut and analyzer
// configuration change. Failures are logged.
func (s *Store) EnableAutoSave() {
	if s.autoSave != nil {
		return
	}
	save := func() {
		if s.loading {
			return
		}
		if err := s.Save(); err != nil {
			s.logger.Error("auto-save failed", "path", s.target, "error", err)
		}
	}
	s.autoSave = status.Subscriptions{
		s.status.Shortcuts.AddListener(status.ShortcutListenerFuncs{
			Added:    func(status.ShortcutEvent) { save() },
			Modified: func(status.ShortcutEvent) { save() },
			Removed:  func(status.ShortcutEvent) { save() },
		}),
		s.status.FrameProcessing.AddListener(status.FrameProcessingListenerFuncs{
			Configurations: func(status.ConfigurationsEvent) { save() },
			ActiveIndex:    func(status.IndexEvent) { save() },
			Property:       func(status.PropertyEvent) { save() },
		}),
	}
}

// DisableAutoSave stops saving on change.
func (s *Store) DisableAutoSave() {
	if s.autoSave == nil {
		return
	}
	s.autoSave.Unsubscribe()
	s.autoSave = nil
}

// AutoSaving reports whether auto-save is enabled.
func (s *Store) AutoSaving() bool {
	return s.autoSave != nil
}

func (s *Store) formatFor(path string) Format {
	if s.format != nil {
		return s.format
	}
	return FormatFor(path)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
