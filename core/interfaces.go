// Package core provides the registry contracts of the modra runtime
package core

import (
	"context"

	"github.com/tverad/modra/atom"
	"github.com/tverad/modra/module"
	"github.com/tverad/modra/store"
)

// Module is the capability contract a unit must satisfy to be
// registered. The registry never inspects a module beyond this
// surface: phase methods, a status snapshot and an event subscription.
// Concrete modules acquire host resources inside their own hooks
// through injected capabilities; the registry stays unaware of them.
type Module interface {
	// Name returns the module name
	Name() string

	// Init runs the module's init phase
	Init(ctx context.Context) error

	// Start runs the module's start phase
	Start(ctx context.Context) error

	// Stop runs the module's stop phase
	Stop(ctx context.Context) error

	// Status returns a snapshot of the module's lifecycle position
	Status() module.Status

	// Subscribe registers a handler for the module's phase events
	Subscribe(fn func(module.Event)) (cancel func())
}

// Registry drives an ordered set of modules through bulk phase sweeps.
type Registry interface {
	// Register appends a module to the registry in order. It must be
	// called before the first Init sweep.
	Register(name string, m Module) error

	// Init initializes all modules in registration order, fail-fast.
	Init(ctx context.Context) error

	// Start starts all modules in registration order, fail-fast, and
	// mirrors per-module status into the application store.
	Start(ctx context.Context) error

	// Stop stops all modules in reverse registration order,
	// best-effort, aggregating failures.
	Stop(ctx context.Context) error

	// AppStore returns the shared application status store.
	AppStore() *store.Store[AppStatus]

	// Events returns the registry's lifecycle event bus.
	Events() *atom.Bus[Event]

	// Modules returns the registered module names in order.
	Modules() []string
}
