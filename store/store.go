// Package store provides a validated reactive value built from the
// atom primitives: a state cell guarded by an optional rule set, with
// change notification over an event bus.
package store

import (
	"github.com/tverad/modra/atom"
)

// Store holds a single value of type T. Set validates the candidate
// value against the construction-time rules before committing it, and
// notifies subscribers exactly once per successful mutation.
type Store[T any] struct {
	// cell holds the current value
	cell *atom.Cell[T]

	// validate checks candidate values, nil when no rules were given
	validate atom.Validator[T]

	// bus notifies subscribers of committed values
	bus *atom.Bus[T]
}

// New creates a store with the given initial value and optional
// validation rules. The initial value is not validated; rules apply to
// mutations only.
func New[T any](initial T, rules ...atom.Rule[T]) *Store[T] {
	s := &Store[T]{
		cell: atom.NewCell(initial),
		bus:  atom.NewBus[T](),
	}
	if len(rules) > 0 {
		s.validate = atom.Validate(rules)
	}
	return s
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	return s.cell.Read()
}

// Set validates v and, on success, writes it to the cell, emits it to
// all current subscribers exactly once and returns it. On validation
// failure Set returns a *ValidationError naming the first failing
// field; the stored value is unchanged and no subscriber is invoked.
//
// Set is atomic with respect to validation: it either fully succeeds
// or fully fails. Calling Set from within a subscriber of the same
// store produces recursive emission; that is the caller's choice, the
// store neither detects nor prevents it.
func (s *Store[T]) Set(v T) (T, error) {
	if s.validate != nil {
		if result := s.validate(v); !result.OK {
			var zero T
			return zero, &ValidationError{Field: result.Field}
		}
	}
	s.cell.Write(v)
	s.bus.Emit(v)
	return v, nil
}

// On subscribes a handler to committed values and returns a function
// that removes it.
func (s *Store[T]) On(fn func(T)) func() {
	return s.bus.On(fn)
}

// Once subscribes a handler for a single committed value.
func (s *Store[T]) Once(fn func(T)) func() {
	return s.bus.Once(fn)
}

// Reset restores the construction-time value and returns it. Reset is
// a silent rollback primitive: unlike Set it does not validate and
// does not emit.
func (s *Store[T]) Reset() T {
	return s.cell.Reset()
}
