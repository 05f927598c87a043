package core

import (
	"context"
	"database/sql"
)

// Adapter defines the interface that all warehouse adapters must implement.
type Adapter interface {
	// Connect establishes an authenticated session with the warehouse.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the session.
	Close() error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// FetchAll executes a SQL statement and drains every result row.
	FetchAll(ctx context.Context, sql string) (*ResultSet, error)

	// DialectName returns the warehouse dialect served by this adapter.
	DialectName() string
}

// AdapterConfig holds configuration for connecting to a warehouse.
type AdapterConfig struct {
	Type      string
	Account   string
	Username  string
	Password  string
	Role      string
	Database  string
	Warehouse string
	Schema    string
	Options   map[string]string
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}

// ResultSet is a fully fetched, positional result.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}
