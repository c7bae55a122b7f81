package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/livia/internal/pipeline"
	"github.com/five82/livia/internal/status"
	"github.com/five82/livia/internal/ui"
)

const (
	patternWidth  = 160
	patternHeight = 90
	retryBase     = time.Second
)

// feeder pumps frames from the current input into the processor. It
// follows the Input and Playing properties; Playing is mirrored into an
// atomic so the feed goroutine never reads status state.
type feeder struct {
	ctx      context.Context
	proc     *pipeline.Processor
	queue    *ui.Queue
	display  *status.DisplayStatus
	interval time.Duration
	logger   *slog.Logger
	open     func(string) (pipeline.Source, error)
	retry    time.Duration

	playing atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newFeeder(ctx context.Context, proc *pipeline.Processor, queue *ui.Queue, display *status.DisplayStatus, interval time.Duration, logger *slog.Logger) *feeder {
	return &feeder{
		ctx:      ctx,
		proc:     proc,
		queue:    queue,
		display:  display,
		interval: interval,
		logger:   logger,
		open:     openSource,
		retry:    retryBase,
	}
}

// Watch starts feeding the current input and restarts whenever the input
// changes or playback resumes. Call it on the control thread.
func (f *feeder) Watch(fp *status.FrameProcessingStatus) status.Subscription {
	f.playing.Store(fp.Playing.Get())
	subs := status.Subscriptions{
		fp.Input.Subscribe(func(e status.ChangeEvent[string]) {
			f.start(e.New)
		}),
		fp.Playing.Subscribe(func(e status.ChangeEvent[bool]) {
			f.playing.Store(e.New)
			if e.New {
				f.start(fp.Input.Get())
			}
		}),
	}
	f.start(fp.Input.Get())
	return subs
}

// Stop ends the running feed and waits for it.
func (f *feeder) Stop() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()
	f.wg.Wait()
}

func (f *feeder) start(input string) {
	f.Stop()
	if strings.TrimSpace(input) == "" || !f.playing.Load() {
		return
	}

	ctx, cancel := context.WithCancel(f.ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.run(ctx, input)
	}()
}

// run feeds input until playback pauses or ctx ends, reopening the source
// with backoff after failures.
func (f *feeder) run(ctx context.Context, input string) {
	failures := 0
	for {
		err := f.feedOnce(ctx, input)
		if err == nil || ctx.Err() != nil {
			return
		}
		failures++
		f.logger.Warn("frame source failed", "input", input, "failures", failures, "error", err)
		f.report(ctx, fmt.Sprintf("Input %s failed: %v", input, err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(calculateBackoff(failures, f.retry)):
		}
		if !f.playing.Load() {
			return
		}
	}
}

func (f *feeder) feedOnce(ctx context.Context, input string) error {
	src, err := f.open(input)
	if err != nil {
		return err
	}
	return pipeline.Feed(ctx, f.proc, src, f.interval, f.playing.Load)
}

func (f *feeder) report(ctx context.Context, msg string) {
	err := f.queue.Post(ctx, func() { f.display.StatusMessage.Set(msg) })
	if err != nil && !errors.Is(err, context.Canceled) {
		f.logger.Debug("status update dropped", "error", err)
	}
}

func openSource(input string) (pipeline.Source, error) {
	if input == ui.PatternInput {
		return pipeline.NewPatternSource(patternWidth, patternHeight), nil
	}
	src, err := pipeline.OpenImage(input)
	if err != nil {
		return nil, err
	}
	return src, nil
}
