// Package module provides error definitions for lifecycle phases
package module

import (
	"fmt"

	"github.com/tverad/modra/atom"
)

// PhaseError reports a hook failure during a named phase of a named
// module.
type PhaseError struct {
	// Module is the name of the failing module
	Module string

	// Phase is the phase whose hook failed
	Phase atom.Phase

	// Err is the hook's error
	Err error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s failed for module %s: %v", e.Phase, e.Module, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
