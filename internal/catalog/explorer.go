package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// SessionSource hands out the process warehouse session.
// *session.Provider satisfies it.
type SessionSource interface {
	Session(ctx context.Context) (adapter.Adapter, error)
}

// Explorer runs the list-and-normalize pipeline against a session.
type Explorer struct {
	source   SessionSource
	database string
	schema   string
	policy   Policy
	logger   *slog.Logger
}

// NewExplorer creates an explorer scoped to one database and schema.
func NewExplorer(source SessionSource, database, schema string, policy Policy, logger *slog.Logger) *Explorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Explorer{
		source:   source,
		database: database,
		schema:   schema,
		policy:   policy,
		logger:   logger,
	}
}

// Load lists and normalizes one category.
func (e *Explorer) Load(ctx context.Context, cat core.Category) (*Result, error) {
	sess, err := e.source.Session(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := List(ctx, sess, cat)
	if err != nil {
		return nil, err
	}

	n := &Normalizer{
		Querier:  sess,
		Database: e.database,
		Schema:   e.schema,
		Policy:   e.policy,
		Logger:   e.logger,
	}
	return n.Normalize(ctx, rows, cat)
}

// LoadAll loads every category in display order, functions first.
func (e *Explorer) LoadAll(ctx context.Context) ([]*Result, error) {
	return e.LoadCategories(ctx, core.Categories()...)
}

// LoadCategories loads the given categories in order, stopping at the first error.
func (e *Explorer) LoadCategories(ctx context.Context, cats ...core.Category) ([]*Result, error) {
	results := make([]*Result, 0, len(cats))
	for _, cat := range cats {
		r, err := e.Load(ctx, cat)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Find returns the records whose name matches case-insensitively, across the
// given categories.
func (e *Explorer) Find(ctx context.Context, name string, cats ...core.Category) ([]core.Record, error) {
	if len(cats) == 0 {
		cats = core.Categories()
	}
	results, err := e.LoadCategories(ctx, cats...)
	if err != nil {
		return nil, err
	}

	var found []core.Record
	for _, r := range results {
		for _, rec := range r.Records {
			if strings.EqualFold(rec.Name, name) {
				found = append(found, rec)
			}
		}
	}
	return found, nil
}

// Policy returns the failure policy the explorer normalizes with.
func (e *Explorer) Policy() Policy { return e.policy }
