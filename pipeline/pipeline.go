// Package pipeline implements a sequential stage runner: an ordered
// list of context-aware transform stages over one payload type, with
// per-stage progress reported on an event bus.
package pipeline

import (
	"context"

	"github.com/tverad/modra/atom"
)

// Stage transforms a payload. Stages may block on asynchronous work;
// they receive the Run call's context and report failure through
// their error.
type Stage[T any] func(ctx context.Context, v T) (T, error)

// StageStatus describes a stage's progress within a run.
type StageStatus uint8

const (
	// StatusRun means the stage is about to execute
	StatusRun StageStatus = iota

	// StatusOK means the stage completed
	StatusOK

	// StatusFail means the stage returned an error
	StatusFail
)

// String returns the string representation of StageStatus.
func (s StageStatus) String() string {
	switch s {
	case StatusRun:
		return "run"
	case StatusOK:
		return "ok"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Event reports the progress of one stage during a run.
type Event struct {
	// Stage is the zero-based stage index
	Stage int

	// Status is the stage's progress
	Status StageStatus

	// Err is the stage's error when Status is StatusFail
	Err error
}

// Pipeline runs its stages strictly in declaration order, feeding each
// stage's output to the next. A pipeline holds no cursor or other
// mutable run state, so repeated or concurrent Run calls on the same
// instance are independent.
type Pipeline[T any] struct {
	// stages in declaration order, immutable after construction
	stages []Stage[T]

	// events reports per-stage progress
	events *atom.Bus[Event]
}

// New creates a pipeline over the given stages.
func New[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{
		stages: stages,
		events: atom.NewBus[Event](),
	}
}

// Events returns the progress bus. Events fire synchronously inside
// Run, interleaved with stage execution.
func (p *Pipeline[T]) Events() *atom.Bus[Event] {
	return p.events
}

// Len returns the number of stages.
func (p *Pipeline[T]) Len() int {
	return len(p.stages)
}

// Run feeds input through the stages in order. For stage i it emits
// {i, run}, invokes the stage, and on success emits {i, ok} and passes
// the output forward. On stage failure it emits {i, fail, err} and
// returns the zero value with a *StageError wrapping the cause; no
// later stage executes and no partial output is returned. The context
// is checked before each stage, so a cancellation between stages stops
// the run the same way a stage failure does.
func (p *Pipeline[T]) Run(ctx context.Context, input T) (T, error) {
	v := input
	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			p.events.Emit(Event{Stage: i, Status: StatusFail, Err: err})
			var zero T
			return zero, &StageError{Stage: i, Err: err}
		}

		p.events.Emit(Event{Stage: i, Status: StatusRun})

		out, err := stage(ctx, v)
		if err != nil {
			p.events.Emit(Event{Stage: i, Status: StatusFail, Err: err})
			var zero T
			return zero, &StageError{Stage: i, Err: err}
		}

		p.events.Emit(Event{Stage: i, Status: StatusOK})
		v = out
	}
	return v, nil
}
