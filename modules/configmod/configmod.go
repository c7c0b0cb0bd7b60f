// Package configmod provides a ready-made configuration module for
// the modra registry. Its init hook loads a settings file into a
// reactive store and, when watching is enabled, starts a hot-reload
// watcher that pushes every reload through the store so subscribers
// see configuration changes as ordinary store emissions. The stop hook
// shuts the watcher down.
package configmod

import (
	"context"
	"fmt"

	"github.com/tverad/modra/config"
	"github.com/tverad/modra/module"
	"github.com/tverad/modra/store"
)

// Module is a configuration unit satisfying the core registry
// contract.
type Module struct {
	*module.Module

	// path is the settings file location
	path string

	// loader reads and validates the settings file
	loader *config.Loader

	// watcher provides hot reload, nil until init
	watcher *config.Watcher

	// store publishes the current configuration
	store *store.Store[config.Config]
}

// New creates the configuration module over the given settings file.
// The store holds the defaults until the init phase loads the file.
func New(path string) *Module {
	m := &Module{
		Module: module.New("config", path),
		path:   path,
		loader: config.NewLoader(),
		store:  store.New(*config.DefaultConfig()),
	}
	m.OnInit(m.load)
	m.OnStop(m.unwatch)
	return m
}

// Store returns the reactive configuration store. Subscribe to it to
// observe hot reloads.
func (m *Module) Store() *store.Store[config.Config] {
	return m.store
}

// Watcher returns the hot-reload watcher, nil before init or when
// watching is disabled.
func (m *Module) Watcher() *config.Watcher {
	return m.watcher
}

// load reads the settings file into the store and starts the watcher
// when the loaded settings enable it.
func (m *Module) load(ctx context.Context) error {
	watcher, err := config.NewWatcher(m.path, m.loader)
	if err != nil {
		return err
	}

	cfg := watcher.Config()
	if _, err := m.store.Set(*cfg); err != nil {
		watcher.Stop()
		return fmt.Errorf("failed to publish initial config: %w", err)
	}

	if !cfg.Watch.Enabled {
		watcher.Stop()
		return nil
	}

	watcher.OnChange(func(oldConfig, newConfig *config.Config) {
		// A reloaded file that fails the store's rules is dropped;
		// the store keeps the last good configuration.
		m.store.Set(*newConfig)
	})

	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return fmt.Errorf("failed to start config watcher: %w", err)
	}

	m.watcher = watcher
	return nil
}

// unwatch stops the hot-reload watcher.
func (m *Module) unwatch(ctx context.Context) error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Stop()
	m.watcher = nil
	return err
}
