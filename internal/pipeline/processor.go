package pipeline

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/five82/livia/internal/analyzer"
)

const defaultBuffer = 4

// Result is the outcome of analyzing one frame.
type Result struct {
	Input    image.Image
	Output   image.Image
	Analyzer string
	Latency  time.Duration
	Err      error
}

type current struct {
	analyzer analyzer.Analyzer
}

// Processor feeds submitted frames to the current analyzer.
type Processor struct {
	analyzer atomic.Pointer[current]
	last     atomic.Pointer[Result]
	frames   chan image.Image
	stats    statsStore
	logger   *slog.Logger
	onResult func(Result)
}

// Option customizes a Processor.
type Option func(*Processor)

// WithBuffer sets how many frames may wait for the worker.
func WithBuffer(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.frames = make(chan image.Image, n)
		}
	}
}

// WithLogger sets the logger used for analyzer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithResultHandler registers fn to receive every result. fn runs on the
// worker goroutine.
func WithResultHandler(fn func(Result)) Option {
	return func(p *Processor) { p.onResult = fn }
}

// New returns a processor running the no-op analyzer.
func New(opts ...Option) *Processor {
	p := &Processor{
		frames: make(chan image.Image, defaultBuffer),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.analyzer.Store(&current{analyzer: analyzer.NoOp})
	return p
}

// Analyzer returns the analyzer the next frame will be passed to.
func (p *Processor) Analyzer() analyzer.Analyzer {
	return p.analyzer.Load().analyzer
}

// ReplaceAnalyzer atomically installs a and returns the previous analyzer.
// A nil analyzer installs analyzer.NoOp.
func (p *Processor) ReplaceAnalyzer(a analyzer.Analyzer) analyzer.Analyzer {
	if a == nil {
		a = analyzer.NoOp
	}
	old := p.analyzer.Swap(&current{analyzer: a})
	return old.analyzer
}

// Submit queues frame for analysis. It reports false when the frame was
// dropped because the buffer is full.
func (p *Processor) Submit(frame image.Image) bool {
	select {
	case p.frames <- frame:
		return true
	default:
		p.stats.dropped()
		return false
	}
}

// Run analyzes submitted frames until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-p.frames:
			p.Process(frame)
		}
	}
}

// Process analyzes frame synchronously with the current analyzer.
func (p *Processor) Process(frame image.Image) Result {
	a := p.Analyzer()
	start := time.Now()
	out, err := a.Analyze(frame)
	res := Result{
		Input:    frame,
		Output:   out,
		Analyzer: a.TypeID(),
		Latency:  time.Since(start),
		Err:      err,
	}
	if err != nil {
		p.logger.Warn("frame analysis failed", "analyzer", res.Analyzer, "error", err)
	}

	p.stats.record(res)
	p.last.Store(&res)
	if p.onResult != nil {
		p.onResult(res)
	}
	return res
}

// LastResult returns the most recent result, if any frame was processed.
func (p *Processor) LastResult() (Result, bool) {
	res := p.last.Load()
	if res == nil {
		return Result{}, false
	}
	return *res, true
}

// LastFrame returns the most recent analyzed frame, or nil.
func (p *Processor) LastFrame() image.Image {
	res, ok := p.LastResult()
	if !ok {
		return nil
	}
	if res.Output != nil {
		return res.Output
	}
	return res.Input
}

// Stats returns a copy of the processing counters.
func (p *Processor) Stats() Stats {
	return p.stats.snapshot()
}
