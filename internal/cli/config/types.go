// Package config provides configuration management for the Snowpark Explorer CLI.
//
// Values are layered from defaults, an optional snowpark-explorer.yaml file,
// a .env file, the process environment and explicitly set flags.
package config

import (
	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	SessionSecret string `koanf:"session_secret"`
}

// ExplorerConfig controls how catalog metadata is normalized.
type ExplorerConfig struct {
	// Partial keeps going when one object cannot be described.
	Partial bool `koanf:"partial"`
}

// Policy returns the catalog failure policy for the configuration.
func (e *ExplorerConfig) Policy() catalog.Policy {
	if e != nil && e.Partial {
		return catalog.Partial
	}
	return catalog.FailFast
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Host:     DefaultHost,
		Port:     DefaultPort,
		AutoOpen: true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.Host == "" {
		ui.Host = DefaultHost
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	EnvFile      string          `koanf:"env_file"`
	Target       *TargetConfig   `koanf:"target"`
	UI           *UIConfig       `koanf:"ui"`
	Explorer     *ExplorerConfig `koanf:"explorer"`
}

// Default configuration values.
const (
	DefaultTargetType = "snowflake"
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 8765
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultEnvFile    = ".env"
)

// ConfigFileNames are searched in the working directory, in order.
var ConfigFileNames = []string{"snowpark-explorer.yaml", "snowpark-explorer.yml"}
