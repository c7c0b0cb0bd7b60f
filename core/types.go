package core

import (
	"time"

	"github.com/tverad/modra/module"
)

// AppState represents the overall application status held in the
// shared store.
type AppState string

const (
	// AppIdle means no sweep has run yet
	AppIdle AppState = "idle"

	// AppInitialized means the init sweep completed
	AppInitialized AppState = "initialized"

	// AppRunning means the start sweep completed
	AppRunning AppState = "running"

	// AppStopped means the stop sweep completed
	AppStopped AppState = "stopped"
)

// String returns the string representation of AppState.
func (s AppState) String() string {
	return string(s)
}

// AppStatus is the aggregated application snapshot published through
// the registry's shared store.
type AppStatus struct {
	// Status is the overall application state
	Status AppState

	// Modules maps module names to their last observed state
	Modules map[string]module.State
}

// clone returns a deep copy so store subscribers never share the map.
func (s AppStatus) clone() AppStatus {
	modules := make(map[string]module.State, len(s.Modules))
	for name, state := range s.Modules {
		modules[name] = state
	}
	return AppStatus{Status: s.Status, Modules: modules}
}

// Registry lifecycle event types.
const (
	EventModuleRegistered = "module.registered"
	EventModulePhase      = "module.phase"
	EventModuleFailed     = "module.failed"
	EventInitializing     = "registry.initializing"
	EventInitialized      = "registry.initialized"
	EventStarting         = "registry.starting"
	EventRunning          = "registry.running"
	EventStopping         = "registry.stopping"
	EventStopped          = "registry.stopped"
)

// Event is a registry lifecycle notification. Module phase events are
// re-broadcast here alongside the registry's own sweep events.
type Event struct {
	// ID uniquely identifies this event
	ID string

	// Type is one of the Event* constants
	Type string

	// Module names the module concerned, empty for sweep events
	Module string

	// Phase is set on module phase events
	Phase string

	// Timestamp is when the event was created
	Timestamp time.Time

	// Err carries the failure on *.failed events
	Err error
}
