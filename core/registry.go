package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tverad/modra/atom"
	"github.com/tverad/modra/module"
	"github.com/tverad/modra/store"
)

// DefaultPhaseTimeout bounds each module phase call unless overridden.
const DefaultPhaseTimeout = 30 * time.Second

// entry pairs a registered module with its name, preserving order.
type entry struct {
	name string
	mod  Module
}

// DefaultRegistry implements the Registry interface.
type DefaultRegistry struct {
	// entries holds modules in registration order
	entries []entry

	// index maps names to registration positions
	index map[string]int

	// appStore is the shared application status store
	appStore *store.Store[AppStatus]

	// events is the registry's lifecycle event bus
	events *atom.Bus[Event]

	// sweep serializes phase sweeps; no two sweeps of the same
	// registry ever overlap
	sweep chan struct{}

	// finalized is set when the first init sweep begins; it closes
	// the registration window
	finalized *atom.Cell[bool]

	// phaseTimeout bounds each module phase call
	phaseTimeout time.Duration

	// logger records sweep progress, zerolog.Nop by default
	logger zerolog.Logger
}

// NewRegistry creates an empty registry with the default phase timeout
// and a no-op logger.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		index: make(map[string]int),
		appStore: store.New(AppStatus{
			Status:  AppIdle,
			Modules: make(map[string]module.State),
		}),
		events:       atom.NewBus[Event](),
		sweep:        make(chan struct{}, 1),
		finalized:    atom.NewCell(false),
		phaseTimeout: DefaultPhaseTimeout,
		logger:       zerolog.Nop(),
	}
}

// SetPhaseTimeout sets the per-phase timeout budget. A zero or
// negative duration disables the timeout.
func (r *DefaultRegistry) SetPhaseTimeout(d time.Duration) *DefaultRegistry {
	r.phaseTimeout = d
	return r
}

// SetLogger sets the registry logger.
func (r *DefaultRegistry) SetLogger(logger zerolog.Logger) *DefaultRegistry {
	r.logger = logger
	return r
}

// Register appends a module to the registry. Registration must happen
// before the first Init sweep; afterwards it is rejected.
func (r *DefaultRegistry) Register(name string, m Module) error {
	if name == "" {
		return ErrEmptyModuleName
	}
	if m == nil {
		return ErrNilModule
	}
	if r.finalized.Read() {
		return fmt.Errorf("cannot register module %s: %w", name, ErrRegistryFinalized)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("cannot register module %s: %w", name, ErrModuleRegistered)
	}

	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{name: name, mod: m})

	// Re-broadcast the module's own phase events on the registry bus.
	m.Subscribe(func(ev module.Event) {
		r.broadcast(Event{
			Type:   EventModulePhase,
			Module: ev.Module,
			Phase:  ev.Phase.String(),
		})
	})

	r.logger.Debug().Str("module", name).Msg("module registered")
	r.broadcast(Event{Type: EventModuleRegistered, Module: name})
	return nil
}

// Init initializes all modules in registration order, awaiting each
// before advancing. The first failure aborts the sweep: later modules
// are never touched and a *StartupAbort propagates to the caller.
func (r *DefaultRegistry) Init(ctx context.Context) error {
	if err := r.acquireSweep(); err != nil {
		return err
	}
	defer r.releaseSweep()

	r.finalized.Write(true)
	r.broadcast(Event{Type: EventInitializing})
	r.logger.Info().Int("modules", len(r.entries)).Msg("initializing registry")

	for i, e := range r.entries {
		if err := r.callPhase(ctx, e.mod.Init); err != nil {
			return r.abort(atom.PhaseInit, i, err)
		}
		r.recordState(e.name, e.mod.Status().State)
		r.logger.Debug().Str("module", e.name).Msg("module initialized")
	}

	r.setAppState(AppInitialized)
	r.broadcast(Event{Type: EventInitialized})
	return nil
}

// Start starts all modules in registration order with the same
// fail-fast policy as Init. After each module starts, its status is
// written into the shared application store; after the full sweep the
// overall status becomes running.
func (r *DefaultRegistry) Start(ctx context.Context) error {
	if err := r.acquireSweep(); err != nil {
		return err
	}
	defer r.releaseSweep()

	r.broadcast(Event{Type: EventStarting})
	r.logger.Info().Int("modules", len(r.entries)).Msg("starting registry")

	for i, e := range r.entries {
		if err := r.callPhase(ctx, e.mod.Start); err != nil {
			return r.abort(atom.PhaseStart, i, err)
		}
		r.recordState(e.name, e.mod.Status().State)
		r.logger.Debug().Str("module", e.name).Msg("module started")
	}

	r.setAppState(AppRunning)
	r.broadcast(Event{Type: EventRunning})
	r.logger.Info().Msg("registry running")
	return nil
}

// Stop stops all modules in reverse registration order. Unlike
// startup, a failing module does not halt the sweep: every remaining
// module is still given a chance to stop, and all failures are
// aggregated into a single *ShutdownError returned after the sweep.
func (r *DefaultRegistry) Stop(ctx context.Context) error {
	if err := r.acquireSweep(); err != nil {
		return err
	}
	defer r.releaseSweep()

	r.broadcast(Event{Type: EventStopping})
	r.logger.Info().Int("modules", len(r.entries)).Msg("stopping registry")

	var failures []ModuleError
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if err := r.callPhase(ctx, e.mod.Stop); err != nil {
			failures = append(failures, ModuleError{Module: e.name, Err: err})
			r.broadcast(Event{Type: EventModuleFailed, Module: e.name, Err: err})
			r.logger.Error().Err(err).Str("module", e.name).Msg("module failed to stop")
		} else {
			r.logger.Debug().Str("module", e.name).Msg("module stopped")
		}
		r.recordState(e.name, e.mod.Status().State)
	}

	r.setAppState(AppStopped)
	r.broadcast(Event{Type: EventStopped})

	if len(failures) > 0 {
		return &ShutdownError{Failures: failures}
	}
	return nil
}

// AppStore returns the shared application status store.
func (r *DefaultRegistry) AppStore() *store.Store[AppStatus] {
	return r.appStore
}

// Events returns the registry's lifecycle event bus.
func (r *DefaultRegistry) Events() *atom.Bus[Event] {
	return r.events
}

// Modules returns the registered module names in registration order.
func (r *DefaultRegistry) Modules() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// acquireSweep claims the single sweep slot without blocking, so an
// overlapping sweep surfaces as an error instead of a deadlock.
func (r *DefaultRegistry) acquireSweep() error {
	select {
	case r.sweep <- struct{}{}:
		return nil
	default:
		return ErrSweepInProgress
	}
}

// releaseSweep frees the sweep slot.
func (r *DefaultRegistry) releaseSweep() {
	<-r.sweep
}

// callPhase invokes a phase method under the configured timeout.
func (r *DefaultRegistry) callPhase(ctx context.Context, phase func(context.Context) error) error {
	if r.phaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.phaseTimeout)
		defer cancel()
	}
	return phase(ctx)
}

// abort builds the StartupAbort for a failed sweep at index i. The
// modules before i completed this sweep's phase and are deliberately
// left as-is; they are reported so the caller can stop them.
func (r *DefaultRegistry) abort(phase atom.Phase, i int, err error) error {
	e := r.entries[i]
	r.recordState(e.name, e.mod.Status().State)
	r.broadcast(Event{Type: EventModuleFailed, Module: e.name, Err: err})
	r.logger.Error().Err(err).Str("module", e.name).Str("phase", phase.String()).Msg("startup sweep aborted")

	started := make([]string, i)
	for j := 0; j < i; j++ {
		started[j] = r.entries[j].name
	}
	return &StartupAbort{
		Phase:   phase,
		Module:  e.name,
		Index:   i,
		Started: started,
		Err:     err,
	}
}

// recordState mirrors a module's state into the application store.
func (r *DefaultRegistry) recordState(name string, state module.State) {
	app := r.appStore.Get().clone()
	app.Modules[name] = state
	r.appStore.Set(app)
}

// setAppState publishes a new overall application state.
func (r *DefaultRegistry) setAppState(state AppState) {
	app := r.appStore.Get().clone()
	app.Status = state
	r.appStore.Set(app)
}

// broadcast stamps and emits a registry event.
func (r *DefaultRegistry) broadcast(ev Event) {
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now()
	r.events.Emit(ev)
}
