// Package core defines the shared language of Snowpark Explorer.
//
// This package contains:
//   - Domain entities (Category, ListingRow, DescriptionRow, Record)
//   - Service interfaces (Adapter)
//   - Configuration types (TargetConfig, AdapterConfig)
//   - The error taxonomy (ConnectionError, QueryError, SchemaShapeError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
