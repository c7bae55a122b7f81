package status

import "github.com/five82/livia/internal/analyzer"

// ConfigurationsEvent reports a replaced configuration list.
type ConfigurationsEvent struct {
	Source *FrameProcessingStatus
	Kind   Kind
	Old    []AnalyzerConfiguration
	New    []AnalyzerConfiguration
}

// IndexEvent reports a change of the active configuration index. NoConfiguration
// stands for the deactivated state.
type IndexEvent struct {
	Source *FrameProcessingStatus
	Kind   Kind
	Old    int
	New    int
}

// AnalyzerEvent reports a rebuilt or removed analyzer instance.
type AnalyzerEvent struct {
	Source *FrameProcessingStatus
	Kind   Kind
	Old    analyzer.Analyzer
	New    analyzer.Analyzer
}

// PropertyEvent reports a property tuned on the current analyzer instance.
type PropertyEvent struct {
	Source   *FrameProcessingStatus
	Kind     Kind
	Property string
	Old      any
	New      any
}

// FrameProcessingListener reacts to analyzer configuration changes.
type FrameProcessingListener interface {
	ConfigurationsChanged(ConfigurationsEvent)
	ActiveIndexChanged(IndexEvent)
	AnalyzerChanged(AnalyzerEvent)
	PropertyChanged(PropertyEvent)
	ActivationChanged(ChangeEvent[bool])
}

// FrameProcessingListenerFuncs adapts plain functions to
// FrameProcessingListener. Nil fields are ignored.
type FrameProcessingListenerFuncs struct {
	Configurations func(ConfigurationsEvent)
	ActiveIndex    func(IndexEvent)
	Analyzer       func(AnalyzerEvent)
	Property       func(PropertyEvent)
	Activation     func(ChangeEvent[bool])
}

func (f FrameProcessingListenerFuncs) ConfigurationsChanged(e ConfigurationsEvent) {
	if f.Configurations != nil {
		f.Configurations(e)
	}
}

func (f FrameProcessingListenerFuncs) ActiveIndexChanged(e IndexEvent) {
	if f.ActiveIndex != nil {
		f.ActiveIndex(e)
	}
}

func (f FrameProcessingListenerFuncs) AnalyzerChanged(e AnalyzerEvent) {
	if f.Analyzer != nil {
		f.Analyzer(e)
	}
}

func (f FrameProcessingListenerFuncs) PropertyChanged(e PropertyEvent) {
	if f.Property != nil {
		f.Property(e)
	}
}

func (f FrameProcessingListenerFuncs) ActivationChanged(e ChangeEvent[bool]) {
	if f.Activation != nil {
		f.Activation(e)
	}
}
