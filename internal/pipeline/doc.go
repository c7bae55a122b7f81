// Package pipeline runs frames through the live analyzer on a background
// goroutine.
//
// # Overview
//
// The control thread owns analyzer selection (see package status); the
// pipeline only needs to know which analyzer to call for the next frame.
// That contract is a single atomic pointer:
//
//	Control thread:                  Worker (Run):
//	┌──────────────────────┐         ┌──────────────────────┐
//	│ ReplaceAnalyzer(a)   │──swap──→│ Analyzer()           │
//	│                      │         │ a.Analyze(frame)     │
//	│ Stats()  ←───────────│──lock───│ stats.record(result) │
//	└──────────────────────┘         └──────────────────────┘
//
// A frame already being analyzed finishes with the analyzer it started
// with. The next frame uses the replacement.
//
// # Frame Intake
//
// Submit never blocks. When the buffer is full the frame is dropped and
// counted, so a slow analyzer degrades the frame rate instead of stalling
// the producer.
//
// # Stats
//
// Stats returns a copy of the counters guarded by a RWMutex. The poller in
// package app reads it on a ticker and reports it in the status bar.
package pipeline
