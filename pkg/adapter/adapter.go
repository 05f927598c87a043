// Package adapter provides warehouse adapter interfaces and shared plumbing
// for Snowpark Explorer.
//
// This package contains the public contract that all warehouse adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
//
// Core types (Config, Rows, ResultSet) are defined in pkg/core and
// re-exported here via type aliases.
package adapter

import (
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

type (
	// Adapter is an alias for core.Adapter.
	Adapter = core.Adapter

	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows

	// ResultSet is an alias for core.ResultSet.
	ResultSet = core.ResultSet
)
