package configmod

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tverad/modra/config"
	"github.com/tverad/modra/module"
)

func writeConfig(t *testing.T, path, name string, watch bool) {
	t.Helper()
	data := "app:\n  name: " + name + "\n"
	if watch {
		data += "watch:\n  enabled: true\n  debounce: 10ms\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigmodInitLoadsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modra.yaml")
	writeConfig(t, path, "loaded", false)

	m := New(path)

	// Before init the store holds defaults.
	if got := m.Store().Get().App.Name; got != "modra" {
		t.Fatalf("Expected default config before init, got %q", got)
	}

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if got := m.Store().Get().App.Name; got != "loaded" {
		t.Errorf("Expected loaded config in store, got %q", got)
	}
	if m.Watcher() != nil {
		t.Error("Expected no watcher when watching is disabled")
	}
	if got := m.Status().State; got != module.StateInit {
		t.Errorf("Expected init state, got %s", got)
	}
}

func TestConfigmodHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modra.yaml")
	writeConfig(t, path, "first", true)

	m := New(path)
	ctx := context.Background()

	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if m.Watcher() == nil {
		t.Fatal("Expected a running watcher")
	}

	var observed []string
	m.Store().On(func(c config.Config) { observed = append(observed, c.App.Name) })

	writeConfig(t, path, "second", true)
	if err := m.Watcher().Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if got := m.Store().Get().App.Name; got != "second" {
		t.Errorf("Expected reloaded config in store, got %q", got)
	}
	if len(observed) != 1 || observed[0] != "second" {
		t.Errorf("Expected one store emission for the reload, got %v", observed)
	}

	if err := m.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if m.Watcher() != nil {
		t.Error("Expected watcher cleared after stop")
	}
}

func TestConfigmodInitFailsOnMissingFile(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "missing.yaml"))

	if err := m.Init(context.Background()); err == nil {
		t.Fatal("Expected init to fail for missing settings file")
	}
	if got := m.Status().State; got != module.StateError {
		t.Errorf("Expected error state, got %s", got)
	}
}
