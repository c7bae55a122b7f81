package status

import (
	"context"
	"image"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/analyzer/builtin"
	"github.com/five82/livia/internal/pipeline"
)

// Run with -race: property changes on the control thread must not touch the
// instance the worker is analyzing with.
func TestFrameProcessing_SetPropertyWhileRunning(t *testing.T) {
	registry, err := analyzer.NewRegistry(builtin.Types()...)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	proc := pipeline.New(pipeline.WithLogger(logger))
	s := NewFrameProcessingStatus(proc, registry, WithLogger(logger))
	list := []AnalyzerConfiguration{NewAnalyzerConfiguration("gray", builtin.GrayscaleID)}
	if err := s.SetConfigurationsAt(KindLive, list, 0); err != nil {
		t.Fatalf("SetConfigurationsAt returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		proc.Run(ctx)
	}()

	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 200; i++ {
		proc.Submit(frame)
		wired := proc.Analyzer()
		if err := s.SetProperty(KindLive, "gain", 1.0+float64(i+1)/100); err != nil {
			t.Fatalf("SetProperty returned error: %v", err)
		}
		if proc.Analyzer() == wired {
			t.Fatalf("SetProperty mutated the wired analyzer in place")
		}
	}
	cancel()
	wg.Wait()

	if v, _ := proc.Analyzer().Get("gain"); v != 3.0 {
		t.Fatalf("wired gain = %v, want 3", v)
	}
	cfg, _ := s.ActiveConfiguration(KindLive)
	if v, _ := cfg.Override("gain"); v != 3.0 {
		t.Fatalf("override gain = %v, want 3", v)
	}
}
