// Package host defines the capability interface concrete modules use
// to reach platform resources from inside their lifecycle hooks.
//
// The kernel never touches these capabilities itself; a module
// receives a Services value through its constructor, so nothing in the
// runtime depends on ambient process-global state.
package host

import (
	"os"
)

// Services is the platform capability surface injected into concrete
// modules.
type Services interface {
	// Env looks up an environment variable
	Env(key string) (string, bool)

	// WorkDir returns the current working directory
	WorkDir() (string, error)

	// ReadFile reads a file's contents
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a file's contents
	WriteFile(path string, data []byte) error
}

// OS implements Services against the real operating system.
type OS struct{}

// Env looks up an environment variable.
func (OS) Env(key string) (string, bool) {
	return os.LookupEnv(key)
}

// WorkDir returns the current working directory.
func (OS) WorkDir() (string, error) {
	return os.Getwd()
}

// ReadFile reads a file's contents.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes a file's contents with 0644 permissions.
func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
