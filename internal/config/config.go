// Package config provides configuration management for ductnoise.
//
// The config file holds tool settings only. Networks are separate YAML
// files passed on the command line, and computed runs live in the
// archive database.
//
// Config file locations (priority order):
//  1. $DUCTNOISE_CONFIG
//  2. ./ductnoise.yaml
//  3. $XDG_CONFIG_HOME/ductnoise/config.yaml
//  4. ~/.config/ductnoise/config.yaml
//  5. /etc/ductnoise/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "./ductnoise.db"
	defaultTemperature  = 20.0
	defaultHumidity     = 50.0
	defaultDebounce     = 300 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		Log:         LogConfig{Level: "info", Format: "text"},
		Database:    DatabaseConfig{Path: defaultDatabasePath},
		Environment: EnvironmentConfig{Temperature: defaultTemperature, Humidity: defaultHumidity},
		Output:      OutputConfig{Format: "text"},
		Watch:       WatchConfig{Debounce: Duration(defaultDebounce)},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	// a climate of exactly 0 °C and 0 % is indistinguishable from unset
	if c.Environment.Temperature == 0 && c.Environment.Humidity == 0 {
		c.Environment.Temperature = defaultTemperature
		c.Environment.Humidity = defaultHumidity
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = Duration(defaultDebounce)
	}
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "yaml", "yml", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	archive := "disabled"
	if c.Database.IsEnabled() {
		archive = c.Database.Path
	}

	summary := fmt.Sprintf("Log: %s (%s)\n", c.Log.Level, c.Log.Format)
	summary += fmt.Sprintf("Archive: %s\n", archive)
	summary += fmt.Sprintf("Room climate: %g °C, %g %%\n", c.Environment.Temperature, c.Environment.Humidity)
	summary += fmt.Sprintf("Output: %s, Watch debounce: %s", c.Output.Format, c.Watch.Debounce.Duration())

	return summary
}
