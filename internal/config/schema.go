package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version     int               `yaml:"version"`
	Log         LogConfig         `yaml:"log"`
	Database    DatabaseConfig    `yaml:"database"`
	Environment EnvironmentConfig `yaml:"environment"`
	Output      OutputConfig      `yaml:"output"`
	Watch       WatchConfig       `yaml:"watch"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DatabaseConfig holds the run archive settings
type DatabaseConfig struct {
	Path    string `yaml:"path"`
	Enabled *bool  `yaml:"enabled,omitempty"` // nil = enabled
}

// IsEnabled reports whether computed reports are archived
func (d DatabaseConfig) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// EnvironmentConfig is the room climate used when a network file sets none
type EnvironmentConfig struct {
	Temperature float64 `yaml:"temperature"` // °C
	Humidity    float64 `yaml:"humidity"`    // % relative
}

// OutputConfig selects how reports are printed
type OutputConfig struct {
	Format  string `yaml:"format"` // text, yaml, json
	Spectra bool   `yaml:"spectra,omitempty"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `yaml:"debounce"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
