// Package config provides configuration management for the modra runtime
package config

import (
	"time"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// String returns the string representation of Environment
func (e Environment) String() string {
	return string(e)
}

// IsValid checks if the environment is valid
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvTesting, EnvProduction:
		return true
	default:
		return false
	}
}

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Config represents the complete modra runtime configuration
type Config struct {
	// Application configuration
	App AppConfig `yaml:"app" json:"app"`

	// Lifecycle sweep configuration
	Lifecycle LifecycleConfig `yaml:"lifecycle" json:"lifecycle"`

	// Logging configuration
	Log LogConfig `yaml:"log" json:"log"`

	// Configuration watch configuration
	Watch WatchConfig `yaml:"watch" json:"watch"`

	// Custom configurations (for user-defined modules)
	Custom map[string]interface{} `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	// Application name
	Name string `yaml:"name" json:"name"`

	// Deployment environment
	Environment Environment `yaml:"environment" json:"environment"`
}

// LifecycleConfig contains phase sweep settings
type LifecycleConfig struct {
	// Timeout budget for each module's init phase
	InitTimeout time.Duration `yaml:"init_timeout" json:"init_timeout"`

	// Timeout budget for each module's start phase
	StartTimeout time.Duration `yaml:"start_timeout" json:"start_timeout"`

	// Timeout budget for each module's stop phase
	StopTimeout time.Duration `yaml:"stop_timeout" json:"stop_timeout"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	// Log level
	Level LogLevel `yaml:"level" json:"level"`

	// Log format (json, console)
	Format string `yaml:"format" json:"format"`
}

// WatchConfig contains hot-reload settings
type WatchConfig struct {
	// Enable file watching
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Debounce window for rapid file changes
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "modra",
			Environment: EnvDevelopment,
		},
		Lifecycle: LifecycleConfig{
			InitTimeout:  30 * time.Second,
			StartTimeout: 30 * time.Second,
			StopTimeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level:  LogLevelInfo,
			Format: "console",
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return ErrInvalidAppName
	}
	if !c.App.Environment.IsValid() {
		return ErrInvalidEnvironment
	}
	if !c.Log.Level.IsValid() {
		return ErrInvalidLogLevel
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return ErrInvalidLogFormat
	}
	if c.Lifecycle.InitTimeout <= 0 || c.Lifecycle.StartTimeout <= 0 || c.Lifecycle.StopTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Watch.Enabled && c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}
	return nil
}
