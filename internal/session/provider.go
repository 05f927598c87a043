// Package session owns the single authenticated warehouse session of a process.
//
// A Provider is built once in the composition root and handed to every
// consumer. The first call to Session connects; later calls reuse the handle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Provider lazily opens and memoizes one warehouse session.
type Provider struct {
	cfg    core.AdapterConfig
	logger *slog.Logger

	mu   sync.Mutex
	conn adapter.Adapter
}

// New creates a provider for the given target. No connection is made until
// Session is called.
func New(cfg core.AdapterConfig, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Type == "" {
		cfg.Type = "snowflake"
	}
	return &Provider{cfg: cfg, logger: logger}
}

// Session returns the memoized session, connecting on first use.
// Missing or rejected credentials are reported as *core.ConnectionError.
// A failed attempt is not memoized, so a later call tries again.
func (p *Provider) Session(ctx context.Context) (adapter.Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return p.conn, nil
	}

	if missing := p.cfg.Missing(); len(missing) > 0 {
		return nil, &core.ConnectionError{Account: p.cfg.Account, Missing: missing}
	}

	p.logger.Debug("opening warehouse session",
		slog.String("adapter_type", p.cfg.Type),
		slog.String("account", p.cfg.Account))

	conn, err := adapter.NewAdapter(p.cfg, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse adapter: %w", err)
	}

	if err := conn.Connect(ctx, p.cfg); err != nil {
		_ = conn.Close()
		var connErr *core.ConnectionError
		if errors.As(err, &connErr) {
			return nil, err
		}
		return nil, &core.ConnectionError{Account: p.cfg.Account, Err: err}
	}

	p.conn = conn
	return conn, nil
}

// Connected reports whether a session has been established.
func (p *Provider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn != nil
}

// Close releases the session if one is open.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
