package host

import (
	"path/filepath"
	"testing"
)

func TestOSEnv(t *testing.T) {
	t.Setenv("MODRA_HOST_TEST", "value")

	var svc Services = OS{}

	got, ok := svc.Env("MODRA_HOST_TEST")
	if !ok || got != "value" {
		t.Errorf("Expected env value, got %q (ok=%v)", got, ok)
	}

	if _, ok := svc.Env("MODRA_HOST_TEST_MISSING"); ok {
		t.Error("Expected missing variable to report not-ok")
	}
}

func TestOSFileRoundTrip(t *testing.T) {
	var svc Services = OS{}
	path := filepath.Join(t.TempDir(), "state.txt")

	if err := svc.WriteFile(path, []byte("payload")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := svc.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Expected written payload back, got %q", data)
	}
}

func TestOSWorkDir(t *testing.T) {
	var svc Services = OS{}

	dir, err := svc.WorkDir()
	if err != nil {
		t.Fatalf("WorkDir failed: %v", err)
	}
	if dir == "" {
		t.Error("Expected a non-empty working directory")
	}
}
