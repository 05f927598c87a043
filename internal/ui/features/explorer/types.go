// Package explorer provides the callable explorer feature for the UI.
package explorer

import (
	"context"

	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Loader loads every category of callables. *catalog.Explorer satisfies it.
type Loader interface {
	LoadAll(ctx context.Context) ([]*catalog.Result, error)
}

// Tab identifies one dashboard tab.
type Tab string

// Dashboard tabs, in display order.
const (
	TabFunctions  Tab = "functions"
	TabProcedures Tab = "procedures"
)

// Tabs returns the tabs in display order.
func Tabs() []Tab { return []Tab{TabFunctions, TabProcedures} }

// ParseTab returns the tab for s, defaulting to functions.
func ParseTab(s string) Tab {
	if Tab(s) == TabProcedures {
		return TabProcedures
	}
	return TabFunctions
}

// TabFor maps a catalog category onto its tab.
func TabFor(cat core.Category) Tab {
	if cat == core.CategoryProcedure {
		return TabProcedures
	}
	return TabFunctions
}

// Title is the label shown on the tab.
func (t Tab) Title() string {
	if t == TabProcedures {
		return core.CategoryProcedure.Title()
	}
	return core.CategoryFunction.Title()
}

// Sort is the column ordering of both grids. It travels as the sort and
// desc datastar signals; an empty column keeps listing order.
type Sort struct {
	Column string `json:"sort"`
	Desc   bool   `json:"desc"`
}

// Meta describes the explorer target for page chrome.
type Meta struct {
	Database string
	Schema   string
}

// ContentData is everything the explorer content area needs.
type ContentData struct {
	Meta   Meta
	Groups []present.Group
	Sort   Sort
	Err    error
}

// PageData is the full page model.
type PageData struct {
	Title   string
	Active  Tab
	Content ContentData
}

// PageTitle is the dashboard title.
const PageTitle = "Snowflake Snowpark Explorer"
