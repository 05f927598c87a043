package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/internal/cli/config"
	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/internal/session"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Session  *session.Provider
	Explorer *catalog.Explorer
	Renderer *present.Renderer
}

// NewCommandContext creates a CommandContext with a warehouse session provider
// and renderer. No connection is made until the first query.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	format, err := present.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, nil, err
	}

	provider := session.New(cfg.Target.AdapterConfig(), logger)
	explorer := catalog.NewExplorer(provider, cfg.Target.Database, cfg.Target.Schema, cfg.Explorer.Policy(), logger)

	cleanup := func() {
		if !provider.Connected() {
			return
		}
		logger.Debug("closing warehouse session")
		if err := provider.Close(); err != nil {
			logger.Warn("failed to close warehouse session", slog.String("error", err.Error()))
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Session:  provider,
		Explorer: explorer,
		Renderer: present.NewRenderer(cmd.OutOrStdout(), format),
	}, cleanup, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Target:       &config.TargetConfig{Type: config.DefaultTargetType},
		UI:           config.DefaultUIConfig(),
		Explorer:     &config.ExplorerConfig{},
	}
}
