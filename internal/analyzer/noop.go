package analyzer

import (
	"fmt"
	"image"
)

// NoOpID is the type id reported by NoOp.
const NoOpID = "noop"

type noOp struct{}

// NoOp is the shared pass-through analyzer used when no configuration is
// active.
var NoOp Analyzer = noOp{}

func (noOp) TypeID() string { return NoOpID }

func (noOp) Analyze(frame image.Image) (image.Image, error) { return frame, nil }

func (noOp) Get(string) (any, bool) { return nil, false }

func (noOp) Set(id string, _ any) error {
	return fmt.Errorf("no-op analyzer has no property %q", id)
}
