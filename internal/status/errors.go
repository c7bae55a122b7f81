package status

import "fmt"

// AnalyzerResolutionError reports a configuration that could not be turned
// into an analyzer: the index is out of range or the type id is unknown.
type AnalyzerResolutionError struct {
	Kind  Kind
	Index int
	Type  string
	Err   error
}

func (e *AnalyzerResolutionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("resolve %s analyzer configuration %d: %v", e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("resolve %s analyzer configuration %d (%s): %v", e.Kind, e.Index, e.Type, e.Err)
}

func (e *AnalyzerResolutionError) Unwrap() error {
	return e.Err
}
