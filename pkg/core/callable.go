package core

import (
	"fmt"
	"strings"
	"time"
)

// Category is the kind of callable object listed from the warehouse.
type Category string

// Callable categories.
const (
	CategoryFunction  Category = "function"  // UDFs and UDTFs
	CategoryProcedure Category = "procedure" // stored procedures
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryFunction, CategoryProcedure}
}

// ParseCategory accepts the singular, plural and short forms used on the command line.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function", "functions", "udf", "udfs", "udtf", "udtfs":
		return CategoryFunction, nil
	case "procedure", "procedures", "proc", "procs", "sproc", "sprocs":
		return CategoryProcedure, nil
	default:
		return "", fmt.Errorf("unknown category %q (want functions or procedures)", s)
	}
}

// Label is the description literal the warehouse emits for objects of this
// category. Matching is exact and case-sensitive.
func (c Category) Label() string {
	if c == CategoryProcedure {
		return "user-defined procedure"
	}
	return "user-defined function"
}

// ShowSQL returns the listing command for the category.
func (c Category) ShowSQL() string {
	if c == CategoryProcedure {
		return "SHOW USER PROCEDURES"
	}
	return "SHOW USER FUNCTIONS"
}

// DescribeSQL returns the describe command for one name-and-parameter list.
func (c Category) DescribeSQL(target string) string {
	if c == CategoryProcedure {
		return "DESCRIBE PROCEDURE " + target
	}
	return "DESCRIBE FUNCTION " + target
}

// Title is the group heading used by renderers.
func (c Category) Title() string {
	if c == CategoryProcedure {
		return "Stored Procedures"
	}
	return "User-Defined Functions"
}

// ListingRow is one decoded row of SHOW USER FUNCTIONS / PROCEDURES.
// Boolean-like flags are kept as the warehouse emits them ("Y"/"N").
type ListingRow struct {
	CreatedOn     time.Time
	Name          string
	Schema        string
	Builtin       string
	Aggregate     string
	Signature     string
	Description   string
	Database      string
	TableFunction string
	Clustering    string
	Secure        string
}

// DescriptionRow is one (property, value) row of DESCRIBE FUNCTION / PROCEDURE.
// Value is nil when the warehouse returned NULL.
type DescriptionRow struct {
	Property string
	Value    *string
}

// Record is the normalized view of one callable object.
type Record struct {
	Name          string `json:"name" yaml:"name"`
	Signature     string `json:"signature" yaml:"signature"`
	Imports       string `json:"imports" yaml:"imports"`
	Packages      string `json:"packages" yaml:"packages"`
	Builtin       string `json:"builtin" yaml:"builtin"`
	Aggregate     string `json:"aggregate" yaml:"aggregate"`
	TableFunction string `json:"table_function" yaml:"table_function"`
	Clustering    string `json:"clustering" yaml:"clustering"`
	Secure        string `json:"secure" yaml:"secure"`
	Handler       string `json:"handler" yaml:"handler"`
	DateCreated   string `json:"date_created" yaml:"date_created"`
	Body          string `json:"body" yaml:"body"`

	// Returns is the text after RETURN in the signature, or "N/A".
	// It is not a grid column.
	Returns string `json:"returns" yaml:"returns"`
}

// NotAvailable is the sentinel for absent imports and packages.
const NotAvailable = "N/A"
