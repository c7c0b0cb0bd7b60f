package atom

import (
	"sync"
)

// Cell is a mutable holder for a single value of type T.
//
// A Cell is pure storage: it performs no validation and sends no
// notifications. Reactive behavior is layered on top of it by the
// store package.
type Cell[T any] struct {
	// mu protects value
	mu sync.RWMutex

	// value is the current content of the cell
	value T

	// initial is the construction-time value restored by Reset
	initial T
}

// NewCell creates a cell holding the given initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:   initial,
		initial: initial,
	}
}

// Read returns the current value.
func (c *Cell[T]) Read() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Write replaces the current value and returns the written value.
func (c *Cell[T]) Write(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	return v
}

// Reset restores the construction-time value and returns it.
func (c *Cell[T]) Reset() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = c.initial
	return c.value
}
