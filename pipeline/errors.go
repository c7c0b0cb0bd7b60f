// Package pipeline provides error definitions for stage runs
package pipeline

import (
	"fmt"
)

// StageError reports a stage failure, identified by its zero-based
// index, wrapping the original cause.
type StageError struct {
	// Stage is the index of the failing stage
	Stage int

	// Err is the stage's error
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %d failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
