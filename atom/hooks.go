package atom

import (
	"context"
	"sync"
)

// Phase identifies a lifecycle phase a module passes through.
type Phase string

const (
	// PhaseInit is the initialization phase
	PhaseInit Phase = "init"

	// PhaseStart is the startup phase
	PhaseStart Phase = "start"

	// PhaseStop is the shutdown phase
	PhaseStop Phase = "stop"

	// PhaseDestroy is the optional teardown phase
	PhaseDestroy Phase = "destroy"
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	return string(p)
}

// IsValid checks if the phase is one of the known lifecycle phases.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseInit, PhaseStart, PhaseStop, PhaseDestroy:
		return true
	default:
		return false
	}
}

// Hook is a lifecycle handler. Hooks receive the context of the phase
// call that invokes them and report failure through their error.
type Hook func(ctx context.Context) error

// Hooks maps lifecycle phases to ordered handler lists.
type Hooks struct {
	// mu protects table
	mu sync.Mutex

	// table holds handlers per phase in registration order
	table map[Phase][]Hook
}

// NewHooks creates an empty hook table.
func NewHooks() *Hooks {
	return &Hooks{
		table: make(map[Phase][]Hook),
	}
}

// Add appends a handler to the given phase's list.
func (h *Hooks) Add(phase Phase, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table[phase] = append(h.table[phase], hook)
}

// Run invokes all handlers registered for the phase in registration
// order. The first handler error aborts the remaining handlers and is
// returned to the caller. Running a phase with no handlers is a no-op.
func (h *Hooks) Run(ctx context.Context, phase Phase) error {
	h.mu.Lock()
	hooks := make([]Hook, len(h.table[phase]))
	copy(hooks, h.table[phase])
	h.mu.Unlock()

	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of handlers registered for the phase.
func (h *Hooks) Len(phase Phase) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.table[phase])
}
