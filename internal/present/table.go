// Package present turns normalized callable records into tables and renders
// them for the terminal and for machine consumption.
package present

import (
	"slices"
	"strings"
	"time"

	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Column names in display order. Body is last and is the row-level detail.
const (
	ColName          = "Name"
	ColSignature     = "Signature"
	ColImports       = "Imports"
	ColPackages      = "Packages"
	ColBuiltin       = "Builtin"
	ColAggregate     = "Aggregate"
	ColTableFunction = "Table Function"
	ColClustering    = "Clustering"
	ColSecure        = "Secure"
	ColHandler       = "Handler"
	ColDateCreated   = "Date Created"
	ColBody          = "Body"
)

// Columns returns the fixed column order of a callable table.
func Columns() []string {
	return []string{
		ColName, ColSignature, ColImports, ColPackages, ColBuiltin, ColAggregate,
		ColTableFunction, ColClustering, ColSecure, ColHandler, ColDateCreated, ColBody,
	}
}

// GridColumns returns the columns shown in a grid row, without the detail column.
func GridColumns() []string {
	cols := Columns()
	return cols[:len(cols)-1]
}

// Table is a tabular view of records with named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ToTable maps records onto the fixed column order, preserving record order.
func ToTable(records []core.Record) Table {
	t := Table{Columns: Columns(), Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, Row(r))
	}
	return t
}

// Grid returns the table without its detail column.
func (t Table) Grid() Table {
	g := Table{Columns: t.Columns[:len(t.Columns)-1], Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		g.Rows = append(g.Rows, row[:len(row)-1])
	}
	return g
}

// Detail returns the detail cell of row i.
func (t Table) Detail(i int) string {
	row := t.Rows[i]
	return row[len(row)-1]
}

// Row returns the cells of one record in column order.
func Row(r core.Record) []string {
	return []string{
		r.Name, r.Signature, r.Imports, r.Packages, r.Builtin, r.Aggregate,
		r.TableFunction, r.Clustering, r.Secure, r.Handler, r.DateCreated, r.Body,
	}
}

// Failure is an object that could not be described.
type Failure struct {
	Name      string `json:"name" yaml:"name"`
	Signature string `json:"signature" yaml:"signature"`
	Error     string `json:"error" yaml:"error"`
}

// Group is one titled section of output, one per category.
type Group struct {
	Category core.Category `json:"category" yaml:"category"`
	Title    string        `json:"title" yaml:"title"`
	Records  []core.Record `json:"records" yaml:"records"`
	Failures []Failure     `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Table returns the group's records as a table.
func (g Group) Table() Table { return ToTable(g.Records) }

// SortBy returns a copy of the group with its records ordered by column.
// Date Created compares as a date. Ties keep their listing order, and an
// unknown column leaves the order untouched.
func (g Group) SortBy(column string, desc bool) Group {
	idx := slices.Index(Columns(), column)
	if idx < 0 {
		return g
	}
	records := slices.Clone(g.Records)
	slices.SortStableFunc(records, func(a, b core.Record) int {
		c := compareCells(column, Row(a)[idx], Row(b)[idx])
		if desc {
			return -c
		}
		return c
	})
	g.Records = records
	return g
}

func compareCells(column, a, b string) int {
	if column == ColDateCreated {
		ta, errA := time.Parse(catalog.DateLayout, a)
		tb, errB := time.Parse(catalog.DateLayout, b)
		if errA == nil && errB == nil {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Groups turns catalog results into titled groups, keeping their order.
func Groups(results []*catalog.Result) []Group {
	groups := make([]Group, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		g := Group{
			Category: r.Category,
			Title:    r.Category.Title(),
			Records:  r.Records,
		}
		if g.Records == nil {
			g.Records = []core.Record{}
		}
		for _, f := range r.Failures {
			g.Failures = append(g.Failures, Failure{Name: f.Name, Signature: f.Signature, Error: f.Err.Error()})
		}
		groups = append(groups, g)
	}
	return groups
}
