package catalog

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/snowpark-explorer/internal/testutil"
	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

const (
	testDB     = "DEMO_DB"
	testSchema = "PUBLIC"
)

var listingHeader = []string{
	"created_on", "name", "schema_name", "is_builtin", "is_aggregate",
	"is_ansi", "min_num_arguments", "max_num_arguments", "arguments",
	"description", "catalog_name", "is_table_function", "valid_for_clustering",
	"is_secure", "secrets", "external_access_integrations", "is_external_function",
	"language",
}

var created = time.Date(2023, time.January, 5, 9, 30, 0, 0, time.UTC)

type listing struct {
	name, schema, signature, description, database string
}

func (l listing) values() []driver.Value {
	return []driver.Value{
		created, l.name, l.schema, "N", "N",
		"N", int64(2), int64(2), l.signature,
		l.description, l.database, "N", "N",
		"N", nil, nil, "N",
		"PYTHON",
	}
}

func fn(name, signature string) listing {
	return listing{name: name, schema: testSchema, signature: signature, description: "user-defined function", database: testDB}
}

func proc(name, signature string) listing {
	return listing{name: name, schema: testSchema, signature: signature, description: "user-defined procedure", database: testDB}
}

func listingRows(ls ...listing) *sqlmock.Rows {
	rows := sqlmock.NewRows(listingHeader)
	for _, l := range ls {
		rows.AddRow(l.values()...)
	}
	return rows
}

func strPtr(s string) *string { return &s }

// props describes the property table of one callable.
type props struct {
	body, imports, handler, packages *string
}

var functionProperties = []string{
	"signature", "returns", "language", "null handling", "volatility",
	"body", "imports", "handler", "runtime_version", "packages",
}

var procedureProperties = []string{
	"signature", "returns", "language", "null handling", "volatility",
	"execute as", "body", "imports", "handler", "runtime_version", "packages",
}

func (p props) rows(cat core.Category) *sqlmock.Rows {
	names := functionProperties
	if cat == core.CategoryProcedure {
		names = procedureProperties
	}
	rows := sqlmock.NewRows([]string{"property", "value"})
	for _, name := range names {
		var v driver.Value
		switch name {
		case "body":
			v = optional(p.body)
		case "imports":
			v = optional(p.imports)
		case "handler":
			v = optional(p.handler)
		case "packages":
			v = optional(p.packages)
		default:
			v = fmt.Sprintf("<%s>", name)
		}
		rows.AddRow(name, v)
	}
	return rows
}

func optional(s *string) driver.Value {
	if s == nil {
		return nil
	}
	return *s
}

// newMockAdapter returns a connected adapter backed by sqlmock with exact
// query matching.
func newMockAdapter(t *testing.T) (*adapter.BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &adapter.BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}, mock
}

// fakeQuerier answers from a fixed map and records every statement.
type fakeQuerier struct {
	results map[string]*core.ResultSet
	errs    map[string]error
	calls   []string
}

func (f *fakeQuerier) FetchAll(_ context.Context, sql string) (*core.ResultSet, error) {
	f.calls = append(f.calls, sql)
	if err, ok := f.errs[sql]; ok {
		return nil, err
	}
	if rs, ok := f.results[sql]; ok {
		return rs, nil
	}
	return nil, &core.QueryError{SQL: sql, Err: fmt.Errorf("object does not exist")}
}

// propertySet builds a DESCRIBE result in the layout of the category.
func propertySet(cat core.Category, p props) *core.ResultSet {
	names := functionProperties
	if cat == core.CategoryProcedure {
		names = procedureProperties
	}
	rs := &core.ResultSet{Columns: []string{"property", "value"}}
	for _, name := range names {
		var v any = "<" + name + ">"
		switch name {
		case "body":
			v = optional(p.body)
		case "imports":
			v = optional(p.imports)
		case "handler":
			v = optional(p.handler)
		case "packages":
			v = optional(p.packages)
		}
		rs.Rows = append(rs.Rows, []any{name, v})
	}
	return rs
}

func listingRow(l listing) core.ListingRow {
	return core.ListingRow{
		CreatedOn:     created,
		Name:          l.name,
		Schema:        l.schema,
		Builtin:       "N",
		Aggregate:     "N",
		Signature:     l.signature,
		Description:   l.description,
		Database:      l.database,
		TableFunction: "N",
		Clustering:    "N",
		Secure:        "N",
	}
}
