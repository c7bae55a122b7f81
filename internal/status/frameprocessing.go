package status

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/five82/livia/internal/analyzer"
)

// Kind selects one of the two independently tracked analyzers.
type Kind int

const (
	// KindLive is the analyzer wired into the running pipeline.
	KindLive Kind = iota
	// KindStatic is the analyzer used for one-off single frame analysis.
	KindStatic
)

// Kinds lists every analyzer kind.
func Kinds() []Kind {
	return []Kind{KindLive, KindStatic}
}

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoConfiguration is the active index of a deactivated kind. Any negative
// index passed to the setters means the same.
const NoConfiguration = -1

var errIndexOutOfRange = errors.New("configuration index out of range")

// Pipeline is the frame processing pipeline the live analyzer is wired into.
// ReplaceAnalyzer must be atomic with respect to the pipeline's workers.
type Pipeline interface {
	Analyzer() analyzer.Analyzer
	ReplaceAnalyzer(a analyzer.Analyzer) analyzer.Analyzer
}

type analyzerSlot struct {
	configurations []AnalyzerConfiguration
	index          int
	// instance is the analyzer built for index; nil when deactivated. For the
	// live kind it is only wired into the pipeline while live is active.
	instance analyzer.Analyzer
}

// FrameProcessingStatus holds the analyzer configurations of both kinds, the
// active configuration of each and the live activation flag. It rebuilds
// analyzer instances when the selection changes.
type FrameProcessingStatus struct {
	// Input identifies the selected frame source (file path or device).
	Input *Property[string]
	// Playing reports whether the input is being played.
	Playing *Property[bool]

	pipeline   Pipeline
	registry   *analyzer.Registry
	logger     *slog.Logger
	slots      [2]analyzerSlot
	liveActive bool
	listeners  Listeners[FrameProcessingListener]
}

// FrameProcessingOption customizes a FrameProcessingStatus.
type FrameProcessingOption func(*FrameProcessingStatus)

// WithLogger sets the logger used for recovered rebuild errors.
func WithLogger(logger *slog.Logger) FrameProcessingOption {
	return func(s *FrameProcessingStatus) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLiveActive sets whether the live analyzer starts activated. Defaults to true.
func WithLiveActive(active bool) FrameProcessingOption {
	return func(s *FrameProcessingStatus) { s.liveActive = active }
}

// WithInput sets the initial input identifier.
func WithInput(input string) FrameProcessingOption {
	return func(s *FrameProcessingStatus) { s.Input.value = input }
}

// NewFrameProcessingStatus returns a status with both kinds deactivated. The
// pipeline is reset to the no-op analyzer.
func NewFrameProcessingStatus(pipeline Pipeline, registry *analyzer.Registry, opts ...FrameProcessingOption) *FrameProcessingStatus {
	s := &FrameProcessingStatus{
		pipeline:   pipeline,
		registry:   registry,
		logger:     slog.Default(),
		liveActive: true,
	}
	s.Input = NewProperty(s, "")
	s.Playing = NewProperty(s, false)
	for i := range s.slots {
		s.slots[i].index = NoConfiguration
	}
	for _, opt := range opts {
		opt(s)
	}
	pipeline.ReplaceAnalyzer(analyzer.NoOp)
	return s
}

// AddListener registers l for every analyzer configuration event.
func (s *FrameProcessingStatus) AddListener(l FrameProcessingListener) Subscription {
	return s.listeners.Add(l)
}

// Registry returns the analyzer type registry the status resolves types with.
func (s *FrameProcessingStatus) Registry() *analyzer.Registry {
	return s.registry
}

// Configurations returns a copy of the configuration list of kind.
func (s *FrameProcessingStatus) Configurations(kind Kind) []AnalyzerConfiguration {
	return cloneConfigurations(s.slot(kind).configurations)
}

// ActiveIndex returns the active configuration index of kind, or
// NoConfiguration.
func (s *FrameProcessingStatus) ActiveIndex(kind Kind) int {
	return s.slot(kind).index
}

// ActiveConfiguration returns the configuration selected for kind.
func (s *FrameProcessingStatus) ActiveConfiguration(kind Kind) (AnalyzerConfiguration, bool) {
	slot := s.slot(kind)
	if slot.index < 0 || slot.index >= len(slot.configurations) {
		return AnalyzerConfiguration{}, false
	}
	return cloneConfigurations(slot.configurations[slot.index : slot.index+1])[0], true
}

// Analyzer returns the instance built for the selected configuration of kind,
// or the no-op analyzer when kind is deactivated. For the live kind the
// instance may be pending while live analysis is deactivated.
func (s *FrameProcessingStatus) Analyzer(kind Kind) analyzer.Analyzer {
	return orNoOp(s.slot(kind).instance)
}

// WiredAnalyzer returns the analyzer the pipeline currently runs.
func (s *FrameProcessingStatus) WiredAnalyzer() analyzer.Analyzer {
	return s.pipeline.Analyzer()
}

// IsActive reports whether the live analyzer is wired into the pipeline.
func (s *FrameProcessingStatus) IsActive() bool {
	return s.liveActive
}

// Activate wires the selected live analyzer into the pipeline.
func (s *FrameProcessingStatus) Activate() {
	s.setLiveActive(true)
}

// Deactivate replaces the live analyzer in the pipeline with the no-op
// analyzer, keeping the selected configuration.
func (s *FrameProcessingStatus) Deactivate() {
	s.setLiveActive(false)
}

func (s *FrameProcessingStatus) setLiveActive(active bool) {
	if s.liveActive == active {
		return
	}
	s.liveActive = active
	if active {
		s.pipeline.ReplaceAnalyzer(s.Analyzer(KindLive))
	} else {
		s.pipeline.ReplaceAnalyzer(analyzer.NoOp)
	}

	event := ChangeEvent[bool]{Source: s, Old: !active, New: active}
	s.listeners.Each(func(l FrameProcessingListener) { l.ActivationChanged(event) })
}

// SetConfigurations replaces the configuration list of kind. The active index
// is kept while it is still in range. The analyzer is rebuilt only when the
// configuration at that index changed; kind is deactivated when the index is
// out of range or the new configuration cannot be resolved.
func (s *FrameProcessingStatus) SetConfigurations(kind Kind, list []AnalyzerConfiguration) {
	slot := s.slot(kind)
	index := slot.index
	var previous AnalyzerConfiguration
	if index >= 0 && index < len(slot.configurations) {
		previous = slot.configurations[index]
	}
	s.replaceConfigurations(kind, list)
	switch {
	case index < 0:
	case index >= len(slot.configurations):
		s.deactivateSlot(kind)
	case !slot.configurations[index].Equal(previous):
		if err := s.selectConfiguration(kind, index); err != nil {
			s.deactivateSlot(kind)
		}
	}
}

// SetConfigurationsAt replaces the configuration list of kind and activates
// index, always rebuilding the analyzer. A negative index deactivates kind.
func (s *FrameProcessingStatus) SetConfigurationsAt(kind Kind, list []AnalyzerConfiguration, index int) error {
	s.replaceConfigurations(kind, list)
	if index < 0 || len(list) == 0 {
		s.deactivateSlot(kind)
		return nil
	}
	if err := s.selectConfiguration(kind, index); err != nil {
		if s.slot(kind).index >= len(s.slot(kind).configurations) {
			s.deactivateSlot(kind)
		}
		return err
	}
	return nil
}

// SetActiveIndex selects the configuration of kind at index and rebuilds its
// analyzer. A negative index deactivates kind. Selecting the current index is
// a no-op. When the configuration cannot be resolved the error is logged and
// returned, and the previous analyzer stays in place.
func (s *FrameProcessingStatus) SetActiveIndex(kind Kind, index int) error {
	slot := s.slot(kind)
	if index < 0 {
		s.deactivateSlot(kind)
		return nil
	}
	if index == slot.index {
		return nil
	}
	return s.selectConfiguration(kind, index)
}

// Property returns a property of the current analyzer of kind.
func (s *FrameProcessingStatus) Property(kind Kind, id string) (any, bool) {
	inst := s.slot(kind).instance
	if inst == nil {
		return nil, false
	}
	return inst.Get(id)
}

// SetProperty tunes a property of the current analyzer of kind and records
// the value as an override of the active configuration. The wired instance is
// never mutated: a copy carrying the new value replaces it.
func (s *FrameProcessingStatus) SetProperty(kind Kind, id string, value any) error {
	slot := s.slot(kind)
	current := slot.instance
	if current == nil {
		return fmt.Errorf("set %s property %q: no active configuration", kind, id)
	}
	old, ok := current.Get(id)
	if !ok {
		return fmt.Errorf("set %s property %q: analyzer %q has no such property", kind, id, current.TypeID())
	}
	if analyzer.Equal(old, value) {
		return nil
	}
	meta, err := s.registry.Lookup(current.TypeID())
	if err != nil {
		return fmt.Errorf("set %s property %q: %w", kind, id, err)
	}
	next, err := meta.Instantiate()
	if err != nil {
		return fmt.Errorf("set %s property %q: %w", kind, id, err)
	}
	if err := analyzer.CopyProperties(meta, current, next); err != nil {
		s.logger.Warn("carry over analyzer properties", "kind", kind.String(), "type", meta.ID, "error", err)
	}
	if err := next.Set(id, value); err != nil {
		return fmt.Errorf("set %s property %q: %w", kind, id, err)
	}
	stored, _ := next.Get(id)

	slot.instance = next
	if kind == KindLive && s.wired(kind) {
		s.pipeline.ReplaceAnalyzer(next)
	}

	event := PropertyEvent{Source: s, Kind: kind, Property: id, Old: old, New: stored}
	s.listeners.Each(func(l FrameProcessingListener) { l.PropertyChanged(event) })

	list := cloneConfigurations(slot.configurations)
	list[slot.index] = list[slot.index].WithOverride(id, stored)
	s.replaceConfigurations(kind, list)
	return nil
}

// Analyze runs frame through the current analyzer of kind.
func (s *FrameProcessingStatus) Analyze(kind Kind, frame image.Image) (image.Image, error) {
	return s.Analyzer(kind).Analyze(frame)
}

func (s *FrameProcessingStatus) slot(kind Kind) *analyzerSlot {
	if kind != KindStatic {
		return &s.slots[KindLive]
	}
	return &s.slots[KindStatic]
}

func (s *FrameProcessingStatus) wired(kind Kind) bool {
	return kind == KindStatic || s.liveActive
}

func (s *FrameProcessingStatus) replaceConfigurations(kind Kind, list []AnalyzerConfiguration) {
	slot := s.slot(kind)
	old := slot.configurations
	updated := cloneConfigurations(list)
	if equalConfigurations(old, updated) {
		return
	}
	slot.configurations = updated

	event := ConfigurationsEvent{Source: s, Kind: kind, Old: cloneConfigurations(old), New: cloneConfigurations(updated)}
	s.listeners.Each(func(l FrameProcessingListener) { l.ConfigurationsChanged(event) })
}

func (s *FrameProcessingStatus) selectConfiguration(kind Kind, index int) error {
	inst, err := s.build(kind, index)
	if err != nil {
		s.logger.Error("analyzer rebuild aborted", "kind", kind.String(), "index", index, "error", err)
		return err
	}
	s.setIndex(kind, index)
	s.install(kind, inst)
	return nil
}

func (s *FrameProcessingStatus) deactivateSlot(kind Kind) {
	s.setIndex(kind, NoConfiguration)
	s.install(kind, nil)
}

func (s *FrameProcessingStatus) setIndex(kind Kind, index int) {
	slot := s.slot(kind)
	old := slot.index
	if old == index {
		return
	}
	slot.index = index

	event := IndexEvent{Source: s, Kind: kind, Old: old, New: index}
	s.listeners.Each(func(l FrameProcessingListener) { l.ActiveIndexChanged(event) })
}

func (s *FrameProcessingStatus) install(kind Kind, inst analyzer.Analyzer) {
	slot := s.slot(kind)
	old := slot.instance
	if old == nil && inst == nil {
		return
	}
	slot.instance = inst
	if kind == KindLive && s.wired(kind) {
		s.pipeline.ReplaceAnalyzer(orNoOp(inst))
	}

	event := AnalyzerEvent{Source: s, Kind: kind, Old: orNoOp(old), New: orNoOp(inst)}
	s.listeners.Each(func(l FrameProcessingListener) { l.AnalyzerChanged(event) })
}

// build instantiates configuration index of kind, carrying over property
// values from the current instance when it has the same type and applying
// the configuration's overrides on top.
func (s *FrameProcessingStatus) build(kind Kind, index int) (analyzer.Analyzer, error) {
	slot := s.slot(kind)
	if index < 0 || index >= len(slot.configurations) {
		return nil, &AnalyzerResolutionError{Kind: kind, Index: index, Err: errIndexOutOfRange}
	}
	cfg := slot.configurations[index]

	meta, err := s.registry.Lookup(cfg.Analyzer)
	if err != nil {
		return nil, &AnalyzerResolutionError{Kind: kind, Index: index, Type: cfg.Analyzer, Err: err}
	}
	inst, err := meta.Instantiate()
	if err != nil {
		return nil, &AnalyzerResolutionError{Kind: kind, Index: index, Type: cfg.Analyzer, Err: err}
	}

	if current := slot.instance; current != nil && current.TypeID() == meta.ID {
		if err := analyzer.CopyProperties(meta, current, inst); err != nil {
			s.logger.Warn("carry over analyzer properties", "kind", kind.String(), "type", meta.ID, "error", err)
		}
	}

	for _, o := range cfg.Overrides {
		if _, ok := meta.Property(o.Property); !ok {
			s.logger.Warn("ignoring unknown analyzer property",
				"kind", kind.String(), "configuration", cfg.Name, "type", meta.ID, "property", o.Property)
			continue
		}
		if err := inst.Set(o.Property, o.Value); err != nil {
			s.logger.Warn("ignoring invalid analyzer property value",
				"kind", kind.String(), "configuration", cfg.Name, "property", o.Property, "error", err)
		}
	}
	return inst, nil
}

func orNoOp(a analyzer.Analyzer) analyzer.Analyzer {
	if a == nil {
		return analyzer.NoOp
	}
	return a
}
