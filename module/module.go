// Package module implements the lifecycle-managed unit of the modra
// kernel: a named holder of an opaque configuration payload whose
// init/start/stop transitions are driven externally, run registered
// hooks in order and announce themselves on an event bus.
package module

import (
	"context"

	"github.com/tverad/modra/atom"
)

// Module is a named lifecycle-managed unit.
//
// Phase methods are driven by the core registry in init, start, stop
// order. Each phase runs the hooks registered for it, records the new
// status in the status cell and emits one phase event. Hooks must be
// registered before the corresponding phase runs; a hook registered
// after its phase already ran is not retroactively invoked.
type Module struct {
	// name identifies the module in the registry
	name string

	// config is the module's opaque configuration payload
	config any

	// status holds the current lifecycle snapshot
	status *atom.Cell[Status]

	// hooks holds the per-phase handler lists
	hooks *atom.Hooks

	// events announces completed phase transitions
	events *atom.Bus[Event]
}

// New creates an idle module with the given name and configuration
// payload. The payload is opaque to the kernel; hooks may retrieve it
// through Config.
func New(name string, config any) *Module {
	return &Module{
		name:   name,
		config: config,
		status: atom.NewCell(Status{State: StateIdle}),
		hooks:  atom.NewHooks(),
		events: atom.NewBus[Event](),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Config returns the opaque configuration payload.
func (m *Module) Config() any {
	return m.config
}

// OnInit registers a hook for the init phase.
func (m *Module) OnInit(hook atom.Hook) {
	m.hooks.Add(atom.PhaseInit, hook)
}

// OnStart registers a hook for the start phase.
func (m *Module) OnStart(hook atom.Hook) {
	m.hooks.Add(atom.PhaseStart, hook)
}

// OnStop registers a hook for the stop phase.
func (m *Module) OnStop(hook atom.Hook) {
	m.hooks.Add(atom.PhaseStop, hook)
}

// OnDestroy registers a hook for the destroy phase.
func (m *Module) OnDestroy(hook atom.Hook) {
	m.hooks.Add(atom.PhaseDestroy, hook)
}

// Init runs the init phase.
func (m *Module) Init(ctx context.Context) error {
	return m.runPhase(ctx, atom.PhaseInit, StateInit)
}

// Start runs the start phase.
func (m *Module) Start(ctx context.Context) error {
	return m.runPhase(ctx, atom.PhaseStart, StateRun)
}

// Stop runs the stop phase.
func (m *Module) Stop(ctx context.Context) error {
	return m.runPhase(ctx, atom.PhaseStop, StateStop)
}

// Destroy runs the destroy hooks. Destroy is a teardown phase only:
// on success it leaves the status cell untouched.
func (m *Module) Destroy(ctx context.Context) error {
	if err := m.hooks.Run(ctx, atom.PhaseDestroy); err != nil {
		perr := &PhaseError{Module: m.name, Phase: atom.PhaseDestroy, Err: err}
		m.status.Write(Status{State: StateError, Err: perr})
		return perr
	}
	m.events.Emit(Event{Module: m.name, Phase: atom.PhaseDestroy})
	return nil
}

// Status returns a snapshot of the module's lifecycle position.
func (m *Module) Status() Status {
	return m.status.Read()
}

// Subscribe registers a handler for phase events and returns a
// function that removes it.
func (m *Module) Subscribe(fn func(Event)) func() {
	return m.events.On(fn)
}

// runPhase executes the hooks of a phase in registration order. A
// failing hook is wrapped in a *PhaseError, recorded in the status
// cell and propagated; no phase event is emitted. On success the
// status cell is updated to the phase's state before the event fires,
// so subscribers observe the new status.
func (m *Module) runPhase(ctx context.Context, phase atom.Phase, state State) error {
	if err := m.hooks.Run(ctx, phase); err != nil {
		perr := &PhaseError{Module: m.name, Phase: phase, Err: err}
		m.status.Write(Status{State: StateError, Err: perr})
		return perr
	}
	m.status.Write(Status{State: state})
	m.events.Emit(Event{Module: m.name, Phase: phase})
	return nil
}
