// Package snowflake provides a Snowflake warehouse adapter for Snowpark Explorer.
//
// This file registers the Snowflake adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/snowpark-explorer/pkg/adapters/snowflake"
package snowflake

import (
	"log/slog"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
)

func init() {
	adapter.Register("snowflake", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
