// Package core implements the modra registry: an ordered collection
// of named modules driven through bulk init, start and stop sweeps.
//
// Startup sweeps are fail-fast: the first module failure aborts the
// sweep and surfaces as a *StartupAbort, leaving later modules
// untouched and earlier ones running. Shutdown is best-effort: every
// module is given a chance to stop and failures are aggregated into a
// single *ShutdownError. Per-module status is mirrored into a shared
// application store, and every transition is re-broadcast on the
// registry's event bus.
package core
