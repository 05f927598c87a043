// Package fakewarehouse provides an in-memory Snowflake catalog adapter for tests.
package fakewarehouse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Target database and schema used by the fake warehouse.
const (
	Database = "DEMO_DB"
	Schema   = "PUBLIC"
)

// ListingColumns is the SHOW USER FUNCTIONS / PROCEDURES header.
var ListingColumns = []string{
	"created_on", "name", "schema_name", "is_builtin", "is_aggregate",
	"is_ansi", "min_num_arguments", "max_num_arguments", "arguments",
	"description", "catalog_name", "is_table_function", "valid_for_clustering",
	"is_secure",
}

var describeProperties = map[core.Category][]string{
	core.CategoryFunction: {
		"signature", "returns", "language", "null handling", "volatility",
		"body", "imports", "handler", "runtime_version", "packages",
	},
	core.CategoryProcedure: {
		"signature", "returns", "language", "null handling", "volatility",
		"execute as", "body", "imports", "handler", "runtime_version", "packages",
	},
}

// Callable is one object served by the fake warehouse.
type Callable struct {
	Category  core.Category
	Name      string
	Signature string
	Body      string
	Handler   string
	Imports   string
	Packages  *string
	Schema    string // defaults to Schema
}

// Warehouse is an in-memory stand-in for the Snowflake catalog commands.
type Warehouse struct {
	mu         sync.Mutex
	results    map[string]*core.ResultSet
	errs       map[string]error
	connectErr error
	calls      []string
	connects   int
}

// NewWarehouse creates an empty fake warehouse with both listings present.
func NewWarehouse() *Warehouse {
	w := &Warehouse{
		results: make(map[string]*core.ResultSet),
		errs:    make(map[string]error),
	}
	for _, cat := range core.Categories() {
		w.results[cat.ShowSQL()] = &core.ResultSet{Columns: ListingColumns}
	}
	return w
}

// Add lists a callable and serves its DESCRIBE result.
func (w *Warehouse) Add(c Callable) *Warehouse {
	w.mu.Lock()
	defer w.mu.Unlock()

	if c.Schema == "" {
		c.Schema = Schema
	}
	if c.Imports == "" {
		c.Imports = "[]"
	}

	listing := w.results[c.Category.ShowSQL()]
	listing.Rows = append(listing.Rows, []any{
		time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), c.Name, c.Schema, "N", "N",
		"N", "0", "0", c.Signature,
		c.Category.Label(), Database, "N", "N",
		"N",
	})

	target, _, _ := strings.Cut(c.Signature, " RETURN")
	desc := &core.ResultSet{Columns: []string{"property", "value"}}
	for _, prop := range describeProperties[c.Category] {
		var v any = "<" + prop + ">"
		switch prop {
		case "body":
			v = c.Body
		case "imports":
			v = c.Imports
		case "handler":
			v = c.Handler
		case "packages":
			if c.Packages == nil {
				v = nil
			} else {
				v = *c.Packages
			}
		}
		desc.Rows = append(desc.Rows, []any{prop, v})
	}
	w.results[c.Category.DescribeSQL(target)] = desc
	return w
}

// Serve answers sql with a fixed result.
func (w *Warehouse) Serve(sql string, rs *core.ResultSet) *Warehouse {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[sql] = rs
	return w
}

// Fail makes sql return err.
func (w *Warehouse) Fail(sql string, err error) *Warehouse {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs[sql] = err
	return w
}

// RejectLogin makes every Connect fail with err.
func (w *Warehouse) RejectLogin(err error) *Warehouse {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connectErr = err
	return w
}

// Calls returns the statements executed so far.
func (w *Warehouse) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

// Connects returns how many sessions were opened.
func (w *Warehouse) Connects() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connects
}

func (w *Warehouse) fetch(sql string) (*core.ResultSet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, sql)
	if err, ok := w.errs[sql]; ok {
		return nil, &core.QueryError{SQL: sql, Err: err}
	}
	if rs, ok := w.results[sql]; ok {
		return rs, nil
	}
	return nil, &core.QueryError{SQL: sql, Err: fmt.Errorf("SQL compilation error: object does not exist")}
}

// Register installs w as adapter type name. Use a name unique to the test.
func (w *Warehouse) Register(name string) {
	adapter.Register(name, func(*slog.Logger) adapter.Adapter { return &warehouseAdapter{w: w} })
}

type warehouseAdapter struct {
	w *Warehouse
}

func (a *warehouseAdapter) Connect(context.Context, core.AdapterConfig) error {
	a.w.mu.Lock()
	defer a.w.mu.Unlock()
	a.w.connects++
	return a.w.connectErr
}

func (a *warehouseAdapter) Close() error { return nil }

func (a *warehouseAdapter) Query(context.Context, string) (*core.Rows, error) {
	return nil, fmt.Errorf("query not supported by fake warehouse")
}

func (a *warehouseAdapter) FetchAll(_ context.Context, sql string) (*core.ResultSet, error) {
	return a.w.fetch(sql)
}

func (a *warehouseAdapter) DialectName() string { return "snowflake" }
