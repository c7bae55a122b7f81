package storage

import (
	"errors"
	"fmt"
)

// ErrMissingTarget is returned by Load and Save when no document path is set.
var ErrMissingTarget = errors.New("configuration target not set")

// ParseError describes a malformed document or fragment. Load logs and
// recovers from these; the affected part of the status is left untouched.
type ParseError struct {
	Path    string
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("parse configuration %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse configuration %s: %s: %v", e.Path, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
