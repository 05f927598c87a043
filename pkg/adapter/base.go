package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Query and FetchAll implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing warehouse connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Query executes a SQL statement that returns rows.
// Warehouse rejections are reported as *core.QueryError.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, &core.QueryError{SQL: sqlStr, Err: err}
	}
	return &core.Rows{Rows: rows}, nil
}

// FetchAll executes a SQL statement and returns every row with its column names.
// []byte values are converted to string; NULL stays nil.
func (b *BaseSQLAdapter) FetchAll(ctx context.Context, sqlStr string) (*core.ResultSet, error) {
	if b.Logger != nil {
		b.Logger.Debug("executing statement", slog.String("sql", sqlStr))
	}

	rows, err := b.Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &core.QueryError{SQL: sqlStr, Err: err}
	}

	result := &core.ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, &core.QueryError{SQL: sqlStr, Err: err}
		}
		for i, v := range values {
			if bs, ok := v.([]byte); ok {
				values[i] = string(bs)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, &core.QueryError{SQL: sqlStr, Err: err}
	}

	return result, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}
