package catalog

import "github.com/leapstack-labs/snowpark-explorer/pkg/core"

// column names a required field of a positional result and the index it
// lives at.
type column struct {
	Field string
	Index int
}

// listingLayout locates the extracted fields in a SHOW USER FUNCTIONS /
// PROCEDURES result. Both categories share it.
type listingLayout struct {
	CreatedOn, Name, Schema, Builtin, Aggregate, Signature, Description,
	Database, TableFunction, Clustering, Secure column
}

var listingColumns = listingLayout{
	CreatedOn:     column{"created_on", 0},
	Name:          column{"name", 1},
	Schema:        column{"schema_name", 2},
	Builtin:       column{"is_builtin", 3},
	Aggregate:     column{"is_aggregate", 4},
	Signature:     column{"arguments", 8},
	Description:   column{"description", 9},
	Database:      column{"catalog_name", 10},
	TableFunction: column{"is_table_function", 11},
	Clustering:    column{"valid_for_clustering", 12},
	Secure:        column{"is_secure", 13},
}

func (l listingLayout) all() []column {
	return []column{
		l.CreatedOn, l.Name, l.Schema, l.Builtin, l.Aggregate, l.Signature,
		l.Description, l.Database, l.TableFunction, l.Clustering, l.Secure,
	}
}

// describeLayout locates the extracted properties in a DESCRIBE result.
// The warehouse emits a different fixed-length property list per category.
type describeLayout struct {
	Body     column
	Imports  column
	Handler  column
	Packages column
}

var describeLayouts = map[core.Category]describeLayout{
	core.CategoryProcedure: {
		Body:     column{"body", 6},
		Imports:  column{"imports", 7},
		Handler:  column{"handler", 8},
		Packages: column{"packages", 10},
	},
	core.CategoryFunction: {
		Body:     column{"body", 5},
		Imports:  column{"imports", 6},
		Handler:  column{"handler", 7},
		Packages: column{"packages", 9},
	},
}

func layoutFor(cat core.Category) describeLayout {
	if l, ok := describeLayouts[cat]; ok {
		return l
	}
	return describeLayouts[core.CategoryFunction]
}

func (l describeLayout) all() []column {
	return []column{l.Body, l.Imports, l.Handler, l.Packages}
}

// minRows is the smallest result that holds every required property.
func (l describeLayout) minRows() int {
	return maxIndex(l.all()) + 1
}

func maxIndex(cols []column) int {
	m := 0
	for _, c := range cols {
		if c.Index > m {
			m = c.Index
		}
	}
	return m
}
