package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// EnvPrefix prefixes the explorer's own environment variables.
// A double underscore separates nested keys: SPEXPLORER_UI__PORT -> ui.port.
const EnvPrefix = "SPEXPLORER_"

// snowsqlEnv maps the SnowSQL credential variables onto target keys.
var snowsqlEnv = map[string]string{
	"SNOWSQL_ACT": "target.account",
	"SNOWSQL_USR": "target.user",
	"SNOWSQL_PWD": "target.password",
	"SNOWSQL_ROL": "target.role",
	"SNOWSQL_DBT": "target.database",
	"SNOWSQL_WRH": "target.warehouse",
	"SNOWSQL_SCH": "target.schema",
}

// flagKeys maps flag names onto config keys where they differ.
var flagKeys = map[string]string{
	"partial":        "explorer.partial",
	"port":           "ui.port",
	"host":           "ui.host",
	"open":           "ui.auto_open",
	"session-secret": "ui.session_secret",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// findConfigFile finds the config file to use.
// Priority: explicit path > snowpark-explorer.yaml > snowpark-explorer.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > .env file > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target.type":      DefaultTargetType,
		"ui.host":          DefaultHost,
		"ui.port":          DefaultPort,
		"ui.auto_open":     true,
		"explorer.partial": false,
		"verbose":          false,
		"output":           DefaultOutput,
		"env_file":         DefaultEnvFile,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load the .env file into the process environment.
	// Variables already set in the environment win.
	envFile := k.String("env_file")
	if flags != nil && flags.Changed("env-file") {
		envFile, _ = flags.GetString("env-file")
	}
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	// 4. Load environment variables
	// Empty variables are skipped so they do not blank out file values.
	if err := k.Load(env.ProviderWithValue("SNOWSQL_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return snowsqlEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load SNOWSQL env vars: %w", err)
	}

	// Transform: SPEXPLORER_UI__AUTO_OPEN -> ui.auto_open
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", "."), value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 6. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Target == nil {
		cfg.Target = &TargetConfig{Type: DefaultTargetType}
	}
	expandTargetEnvVars(cfg.Target)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// loadDotEnv loads path into the environment if it exists.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR}
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandTargetEnvVars expands environment variables in the target credentials.
func expandTargetEnvVars(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Account = expandEnvVars(t.Account)
	t.User = expandEnvVars(t.User)
	t.Password = expandEnvVars(t.Password)
	t.Role = expandEnvVars(t.Role)
	t.Database = expandEnvVars(t.Database)
	t.Warehouse = expandEnvVars(t.Warehouse)
	t.Schema = expandEnvVars(t.Schema)
	for key, v := range t.Options {
		t.Options[key] = expandEnvVars(v)
	}
}
