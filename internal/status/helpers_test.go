package status

import (
	"bytes"
	"image"
	"log/slog"
	"testing"

	"github.com/five82/livia/internal/analyzer"
)

type fakeAnalyzer struct {
	analyzer.Properties
}

func (f *fakeAnalyzer) Analyze(frame image.Image) (image.Image, error) { return frame, nil }

func newFake(m analyzer.Metadata) analyzer.Analyzer {
	return &fakeAnalyzer{Properties: analyzer.NewProperties(m)}
}

var (
	blurType = analyzer.Metadata{
		ID:   "blur",
		Name: "Blur",
		Properties: []analyzer.Property{
			{ID: "radius", Name: "Radius", Type: analyzer.TypeInt, Default: 3},
			{ID: "sigma", Name: "Sigma", Type: analyzer.TypeFloat, Default: 1.0},
		},
		New: newFake,
	}
	edgeType = analyzer.Metadata{
		ID:   "edge",
		Name: "Edge",
		Properties: []analyzer.Property{
			{ID: "threshold", Name: "Threshold", Type: analyzer.TypeInt, Default: 10},
		},
		New: newFake,
	}
)

type fakePipeline struct {
	current analyzer.Analyzer
	swaps   int
}

func (p *fakePipeline) Analyzer() analyzer.Analyzer { return p.current }

func (p *fakePipeline) ReplaceAnalyzer(a analyzer.Analyzer) analyzer.Analyzer {
	old := p.current
	p.current = a
	p.swaps++
	return old
}

func testRegistry(t *testing.T) *analyzer.Registry {
	t.Helper()
	r, err := analyzer.NewRegistry(blurType, edgeType)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	return r
}

func newTestFrameProcessing(t *testing.T, opts ...FrameProcessingOption) (*FrameProcessingStatus, *fakePipeline, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := &fakePipeline{}
	s := NewFrameProcessingStatus(p, testRegistry(t), append([]FrameProcessingOption{WithLogger(logger)}, opts...)...)
	return s, p, &logs
}

// recorder collects frame processing events in order.
type recorder struct {
	events []string
	last   struct {
		index    IndexEvent
		analyzer AnalyzerEvent
		property PropertyEvent
	}
}

func (r *recorder) listener() FrameProcessingListener {
	return FrameProcessingListenerFuncs{
		Configurations: func(ConfigurationsEvent) { r.events = append(r.events, "configurations") },
		ActiveIndex: func(e IndexEvent) {
			r.last.index = e
			r.events = append(r.events, "index")
		},
		Analyzer: func(e AnalyzerEvent) {
			r.last.analyzer = e
			r.events = append(r.events, "analyzer")
		},
		Property: func(e PropertyEvent) {
			r.last.property = e
			r.events = append(r.events, "property")
		},
		Activation: func(ChangeEvent[bool]) { r.events = append(r.events, "activation") },
	}
}
