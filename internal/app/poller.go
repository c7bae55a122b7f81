package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/livia/internal/pipeline"
	"github.com/five82/livia/internal/status"
	"github.com/five82/livia/internal/ui"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a goroutine that reads pipeline statistics at a fixed
// cadence and hands them to report on the control thread. When the pipeline
// starts failing it also posts a status message. It returns immediately.
func StartPoller(ctx context.Context, queue *ui.Queue, proc *pipeline.Processor, display *status.DisplayStatus, report func(pipeline.Stats), interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		failing := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := poll(ctx, queue, proc, display, report, &failing); err != nil {
				return
			}
		}
	}()
}

func poll(ctx context.Context, queue *ui.Queue, proc *pipeline.Processor, display *status.DisplayStatus, report func(pipeline.Stats), failing *bool) error {
	stats := proc.Stats()
	msg, changed := failureMessage(stats, *failing)
	*failing = stats.IsFailing()

	return queue.Post(ctx, func() {
		if report != nil {
			report(stats)
		}
		if changed {
			display.StatusMessage.Set(msg)
		}
	})
}

// failureMessage returns the status message for a change in the failing
// state of the pipeline.
func failureMessage(stats pipeline.Stats, wasFailing bool) (string, bool) {
	switch {
	case stats.IsFailing() && !wasFailing:
		return fmt.Sprintf("Analyzer %s failing: %v", stats.Analyzer, stats.LastError), true
	case !stats.IsFailing() && wasFailing:
		return fmt.Sprintf("Analyzer %s recovered", stats.Analyzer), true
	}
	return "", false
}

// calculateBackoff doubles base for every failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
