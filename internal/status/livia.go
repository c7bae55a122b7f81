package status

import "github.com/five82/livia/internal/analyzer"

// Livia aggregates the status objects of one application instance.
type Livia struct {
	Display         *DisplayStatus
	Shortcuts       *ShortcutStatus
	FrameProcessing *FrameProcessingStatus
}

// New returns an aggregate with default display and shortcut state and both
// analyzer kinds deactivated.
func New(pipeline Pipeline, registry *analyzer.Registry, opts ...FrameProcessingOption) *Livia {
	return &Livia{
		Display:         NewDisplayStatus(),
		Shortcuts:       NewShortcutStatus(),
		FrameProcessing: NewFrameProcessingStatus(pipeline, registry, opts...),
	}
}
