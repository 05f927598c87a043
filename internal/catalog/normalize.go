package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Policy decides what happens when describing one object fails.
type Policy int

const (
	// FailFast aborts the pass on the first failing object.
	FailFast Policy = iota
	// Partial records the failure and continues with the next object.
	Partial
)

func (p Policy) String() string {
	if p == Partial {
		return "partial"
	}
	return "fail-fast"
}

// Failure is one object that could not be described under the Partial policy.
type Failure struct {
	Name      string
	Signature string
	Err       error
}

// Result is the normalized output for one category.
type Result struct {
	Category core.Category
	Records  []core.Record
	Failures []Failure
}

// Normalizer turns listing rows into records for the configured database and
// schema.
type Normalizer struct {
	Querier  Querier
	Database string
	Schema   string
	Policy   Policy
	Logger   *slog.Logger
}

// Qualifies reports whether a listing row belongs to the category and to the
// configured database and schema. All comparisons are exact.
func (n *Normalizer) Qualifies(row core.ListingRow, cat core.Category) bool {
	return row.Description == cat.Label() &&
		row.Database == n.Database &&
		row.Schema == n.Schema
}

// Normalize describes every qualifying row and returns records in input order.
func (n *Normalizer) Normalize(ctx context.Context, rows []core.ListingRow, cat core.Category) (*Result, error) {
	logger := n.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &Result{Category: cat, Records: []core.Record{}}
	for _, row := range rows {
		if !n.Qualifies(row, cat) {
			continue
		}

		rec, err := n.describe(ctx, row, cat)
		if err != nil {
			if n.Policy != Partial {
				return nil, fmt.Errorf("failed to describe %s %s: %w", cat, row.Name, err)
			}
			logger.Warn("skipping callable",
				slog.String("category", string(cat)),
				slog.String("name", row.Name),
				slog.String("error", err.Error()))
			result.Failures = append(result.Failures, Failure{Name: row.Name, Signature: row.Signature, Err: err})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	logger.Debug("normalized callables",
		slog.String("category", string(cat)),
		slog.Int("listed", len(rows)),
		slog.Int("records", len(result.Records)),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}

func (n *Normalizer) describe(ctx context.Context, row core.ListingRow, cat core.Category) (core.Record, error) {
	target, returns := SplitSignature(row.Signature)

	props, err := Describe(ctx, n.Querier, cat, target)
	if err != nil {
		return core.Record{}, err
	}
	desc, err := decodeDescription(cat.DescribeSQL(target), cat, props)
	if err != nil {
		return core.Record{}, err
	}

	return core.Record{
		Name:          row.Name,
		Signature:     row.Signature,
		Imports:       NormalizeImports(desc.Imports),
		Packages:      NormalizePackages(desc.Packages),
		Builtin:       row.Builtin,
		Aggregate:     row.Aggregate,
		TableFunction: row.TableFunction,
		Clustering:    row.Clustering,
		Secure:        row.Secure,
		Handler:       deref(desc.Handler),
		DateCreated:   FormatCreated(row.CreatedOn),
		Body:          deref(desc.Body),
		Returns:       returns,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
