// Package snowflake provides a Snowflake warehouse adapter for Snowpark Explorer.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/snowflakedb/gosnowflake"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// DefaultApplication identifies the explorer in the warehouse query history.
const DefaultApplication = "snowpark-explorer"

// Adapter implements the adapter.Adapter interface for Snowflake.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new Snowflake adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "snowflake"
}

// Connect opens and verifies an authenticated session.
// Missing or rejected credentials are reported as *core.ConnectionError.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if missing := cfg.Missing(); len(missing) > 0 {
		return &core.ConnectionError{Account: cfg.Account, Missing: missing}
	}

	sfCfg, err := buildSnowflakeConfig(cfg)
	if err != nil {
		return &core.ConnectionError{Account: cfg.Account, Err: err}
	}

	dsn, err := gosnowflake.DSN(sfCfg)
	if err != nil {
		return &core.ConnectionError{Account: cfg.Account, Err: fmt.Errorf("failed to build DSN: %w", err)}
	}

	a.Logger.Debug("connecting to snowflake",
		slog.String("account", cfg.Account),
		slog.String("role", cfg.Role),
		slog.String("warehouse", cfg.Warehouse),
		slog.String("database", cfg.Database),
		slog.String("schema", cfg.Schema))

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return &core.ConnectionError{Account: cfg.Account, Err: fmt.Errorf("failed to open snowflake connection: %w", err)}
	}

	// One session per process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &core.ConnectionError{Account: cfg.Account, Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildSnowflakeConfig maps adapter settings onto the driver configuration.
// Recognized options: query_tag, application, login_timeout (Go duration).
func buildSnowflakeConfig(cfg adapter.Config) (*gosnowflake.Config, error) {
	sfCfg := &gosnowflake.Config{
		Account:     cfg.Account,
		User:        cfg.Username,
		Password:    cfg.Password,
		Role:        cfg.Role,
		Database:    cfg.Database,
		Warehouse:   cfg.Warehouse,
		Schema:      cfg.Schema,
		Application: DefaultApplication,
	}

	if app := cfg.Options["application"]; app != "" {
		sfCfg.Application = app
	}

	if tag := cfg.Options["query_tag"]; tag != "" {
		sfCfg.Params = map[string]*string{"QUERY_TAG": &tag}
	}

	if raw := cfg.Options["login_timeout"]; raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid login_timeout %q: %w", raw, err)
		}
		sfCfg.LoginTimeout = timeout
	}

	return sfCfg, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
