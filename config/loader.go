// Package config provides configuration loading and parsing functionality
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Loader handles configuration loading from files, readers and the
// environment
type Loader struct {
	// Configuration search paths
	searchPaths []string

	// Environment variable prefix
	envPrefix string

	// Default configuration
	defaultConfig *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{
			".",
			"./config",
			"./configs",
		},
		envPrefix:     "MODRA",
		defaultConfig: DefaultConfig(),
	}
}

// SetSearchPaths sets the configuration file search paths
func (l *Loader) SetSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// SetEnvPrefix sets the environment variable prefix
func (l *Loader) SetEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// SetDefaultConfig sets the default configuration
func (l *Loader) SetDefaultConfig(config *Config) *Loader {
	l.defaultConfig = config
	return l
}

// LoadFromFile loads configuration from a specific file, applies
// environment overrides and validates the result
func (l *Loader) LoadFromFile(filename string) (*Config, error) {
	format, err := formatFor(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.finish(data, format)
}

// LoadFromReader loads configuration from an io.Reader
func (l *Loader) LoadFromReader(reader io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration data: %w", err)
	}

	return l.finish(data, format)
}

// AutoLoad discovers a configuration file on the search paths and
// loads it; with no file present the defaults (plus environment
// overrides) are used
func (l *Loader) AutoLoad() (*Config, error) {
	configFile, err := l.findConfigFile()
	if err != nil {
		if err == ErrConfigFileNotFound {
			config := l.defaults()
			if err := l.loadFromEnv(config); err != nil {
				return nil, fmt.Errorf("failed to load config from environment: %w", err)
			}
			if err := config.Validate(); err != nil {
				return nil, fmt.Errorf("configuration validation failed: %w", err)
			}
			return config, nil
		}
		return nil, err
	}

	return l.LoadFromFile(configFile)
}

// finish parses, merges defaults, applies environment overrides and
// validates
func (l *Loader) finish(data []byte, format Format) (*Config, error) {
	config, err := l.parseConfig(data, format)
	if err != nil {
		return nil, err
	}

	config = l.mergeConfig(l.defaults(), config)

	if err := l.loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// defaults returns a copy of the default configuration
func (l *Loader) defaults() *Config {
	base := l.defaultConfig
	if base == nil {
		base = DefaultConfig()
	}
	copied := *base
	return &copied
}

// findConfigFile searches for configuration files in search paths
func (l *Loader) findConfigFile() (string, error) {
	filenames := []string{
		"modra.yaml", "modra.yml",
		"config.yaml", "config.yml",
		"modra.json", "config.json",
	}

	for _, searchPath := range l.searchPaths {
		for _, filename := range filenames {
			fullPath := filepath.Join(searchPath, filename)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}

	return "", ErrConfigFileNotFound
}

// parseConfig parses configuration data in the given format
func (l *Loader) parseConfig(data []byte, format Format) (*Config, error) {
	config := &Config{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return config, nil
}

// mergeConfig fills zero-valued fields of config from the defaults
func (l *Loader) mergeConfig(defaults, config *Config) *Config {
	if config.App.Name == "" {
		config.App.Name = defaults.App.Name
	}
	if config.App.Environment == "" {
		config.App.Environment = defaults.App.Environment
	}
	if config.Lifecycle.InitTimeout == 0 {
		config.Lifecycle.InitTimeout = defaults.Lifecycle.InitTimeout
	}
	if config.Lifecycle.StartTimeout == 0 {
		config.Lifecycle.StartTimeout = defaults.Lifecycle.StartTimeout
	}
	if config.Lifecycle.StopTimeout == 0 {
		config.Lifecycle.StopTimeout = defaults.Lifecycle.StopTimeout
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = defaults.Watch.Debounce
	}
	return config
}

// loadFromEnv overrides configuration fields from environment
// variables with the configured prefix
func (l *Loader) loadFromEnv(config *Config) error {
	if v, ok := os.LookupEnv(l.envPrefix + "_APP_NAME"); ok {
		config.App.Name = v
	}
	if v, ok := os.LookupEnv(l.envPrefix + "_APP_ENVIRONMENT"); ok {
		config.App.Environment = Environment(v)
	}
	if v, ok := os.LookupEnv(l.envPrefix + "_LOG_LEVEL"); ok {
		config.Log.Level = LogLevel(v)
	}
	if v, ok := os.LookupEnv(l.envPrefix + "_LOG_FORMAT"); ok {
		config.Log.Format = v
	}
	for _, override := range []struct {
		key    string
		target *time.Duration
	}{
		{"_LIFECYCLE_INIT_TIMEOUT", &config.Lifecycle.InitTimeout},
		{"_LIFECYCLE_START_TIMEOUT", &config.Lifecycle.StartTimeout},
		{"_LIFECYCLE_STOP_TIMEOUT", &config.Lifecycle.StopTimeout},
	} {
		if v, ok := os.LookupEnv(l.envPrefix + override.key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration in %s%s: %w", l.envPrefix, override.key, err)
			}
			*override.target = d
		}
	}
	return nil
}

// formatFor determines the configuration format from a file extension
func formatFor(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}
