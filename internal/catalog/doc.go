// Package catalog lists the callable objects of a warehouse schema and
// normalizes their metadata into core.Record values.
//
// The pipeline is: List issues one SHOW command per category, Normalizer
// filters the listing down to the configured database and schema, describes
// each qualifying object and decodes the fixed property layout of the
// DESCRIBE result.
package catalog

import (
	"context"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Querier runs a statement and returns its full result.
// adapter.BaseSQLAdapter satisfies it.
type Querier interface {
	FetchAll(ctx context.Context, sql string) (*core.ResultSet, error)
}
