package module

import (
	"github.com/tverad/modra/atom"
)

// State represents the lifecycle position of a module.
type State uint8

const (
	// StateIdle means the module has not run any phase yet
	StateIdle State = iota

	// StateInit means the module completed its init phase
	StateInit

	// StateRun means the module completed its start phase
	StateRun

	// StateStop means the module completed its stop phase
	StateStop

	// StateError means a phase hook failed
	StateError
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInit:
		return "init"
	case StateRun:
		return "run"
	case StateStop:
		return "stop"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is a snapshot of a module's lifecycle position.
type Status struct {
	// State is the last completed phase, or StateError
	State State

	// Err is the failing phase error, nil while healthy
	Err error
}

// Event announces a completed phase transition.
type Event struct {
	// Module is the name of the module that transitioned
	Module string

	// Phase is the phase that completed
	Phase atom.Phase
}
