// Package core provides error definitions for registry sweeps
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tverad/modra/atom"
)

// Registration errors
var (
	ErrEmptyModuleName   = errors.New("module name cannot be empty")
	ErrNilModule         = errors.New("module cannot be nil")
	ErrModuleRegistered  = errors.New("module is already registered")
	ErrRegistryFinalized = errors.New("registry already ran its first init sweep")
	ErrSweepInProgress   = errors.New("a phase sweep is already in progress")
)

// StartupAbort reports a fail-fast startup sweep halted at a module.
// Modules after Index were never touched. Modules in Started completed
// earlier phases during startup and were deliberately left as-is; the
// caller decides whether to run Stop over them.
type StartupAbort struct {
	// Phase is the sweep phase that aborted (init or start)
	Phase atom.Phase

	// Module names the failing module
	Module string

	// Index is the failing module's registration position
	Index int

	// Started lists modules left in an initialized or started state
	Started []string

	// Err is the underlying phase error
	Err error
}

func (e *StartupAbort) Error() string {
	msg := fmt.Sprintf("%s sweep aborted at module %s (index %d): %v", e.Phase, e.Module, e.Index, e.Err)
	if len(e.Started) > 0 {
		msg += fmt.Sprintf("; modules left running: %s", strings.Join(e.Started, ", "))
	}
	return msg
}

func (e *StartupAbort) Unwrap() error {
	return e.Err
}

// ModuleError pairs a module name with its stop failure.
type ModuleError struct {
	// Module names the failing module
	Module string

	// Err is the module's stop error
	Err error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Module, e.Err)
}

func (e ModuleError) Unwrap() error {
	return e.Err
}

// ShutdownError aggregates the failures of a best-effort stop sweep.
// It is returned only after every module was given a chance to stop.
type ShutdownError struct {
	// Failures holds one entry per module that failed to stop
	Failures []ModuleError
}

func (e *ShutdownError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Module
	}
	return fmt.Sprintf("shutdown completed with %d failure(s): %s", len(e.Failures), strings.Join(names, ", "))
}

// Unwrap exposes the individual stop failures to errors.Is/As.
func (e *ShutdownError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
