package config

import (
	"fmt"

	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// ValidateTarget checks that the target names a registered adapter.
// Credentials are checked separately so that commands which never touch the
// warehouse work without them.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	_, err := adapter.NewAdapter(t.AdapterConfig(), nil)
	return err
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if _, err := present.ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.UI != nil && (c.UI.Port < 0 || c.UI.Port > 65535) {
		return fmt.Errorf("ui.port %d is out of range", c.UI.Port)
	}
	return nil
}

// ValidateCredentials reports missing warehouse credentials as a
// *core.ConnectionError.
func (c *Config) ValidateCredentials() error {
	if missing := c.Target.Missing(); len(missing) > 0 {
		account := ""
		if c.Target != nil {
			account = c.Target.Account
		}
		return &core.ConnectionError{Account: account, Missing: missing}
	}
	return nil
}
