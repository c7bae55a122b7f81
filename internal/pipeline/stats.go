package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// Stats summarizes the work done by a Processor.
type Stats struct {
	Frames              uint64
	Dropped             uint64
	Failures            uint64
	Analyzer            string
	LastLatency         time.Duration
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsFailing returns true when several frames in a row failed analysis.
func (s Stats) IsFailing() bool {
	return s.ConsecutiveFailures >= 3
}

// HasFrames reports whether any frame was analyzed.
func (s Stats) HasFrames() bool {
	return s.Frames > 0
}

type statsStore struct {
	mu    sync.RWMutex
	stats Stats
}

// record folds res into the counters. A failed frame keeps the last
// successful latency but records the error.
func (s *statsStore) record(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Frames++
	s.stats.Analyzer = res.Analyzer
	s.stats.LastUpdated = time.Now()
	if res.Err != nil {
		s.stats.Failures++
		s.stats.ConsecutiveFailures++
		s.stats.LastError = res.Err
		return
	}
	s.stats.LastLatency = res.Latency
	s.stats.LastError = nil
	s.stats.ConsecutiveFailures = 0
}

func (s *statsStore) dropped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Dropped++
}

func (s *statsStore) snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.stats
	if s.stats.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.stats.LastError)
	}
	return snap
}
