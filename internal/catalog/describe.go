package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// description holds the properties extracted from one DESCRIBE result.
type description struct {
	Body     *string
	Imports  *string
	Handler  *string
	Packages *string
}

// Describe runs DESCRIBE for one target and returns its (property, value) rows.
func Describe(ctx context.Context, q Querier, cat core.Category, target string) ([]core.DescriptionRow, error) {
	sql := cat.DescribeSQL(target)
	rs, err := q.FetchAll(ctx, sql)
	if err != nil {
		return nil, err
	}
	if len(rs.Columns) < 2 {
		return nil, &core.SchemaShapeError{
			Command: sql,
			Field:   "columns",
			Index:   len(rs.Columns),
			Want:    "property and value columns",
			Got:     fmt.Sprintf("%d columns", len(rs.Columns)),
		}
	}

	rows := make([]core.DescriptionRow, 0, rs.Len())
	for _, raw := range rs.Rows {
		if len(raw) < 2 {
			return nil, &core.SchemaShapeError{
				Command: sql,
				Field:   "row",
				Index:   len(raw),
				Want:    "2 values",
				Got:     fmt.Sprintf("%d values", len(raw)),
			}
		}
		rows = append(rows, core.DescriptionRow{
			Property: text(raw[0]),
			Value:    nullable(raw[1]),
		})
	}
	return rows, nil
}

// decodeDescription picks the category's properties out of a DESCRIBE result.
// The result must be long enough and carry the expected property names at the
// expected positions.
func decodeDescription(sql string, cat core.Category, rows []core.DescriptionRow) (description, error) {
	layout := layoutFor(cat)

	if need := layout.minRows(); len(rows) < need {
		return description{}, &core.SchemaShapeError{
			Command: sql,
			Field:   "properties",
			Index:   len(rows),
			Want:    fmt.Sprintf("at least %d rows", need),
			Got:     fmt.Sprintf("%d rows", len(rows)),
		}
	}

	for _, c := range layout.all() {
		if got := rows[c.Index].Property; !strings.EqualFold(strings.TrimSpace(got), c.Field) {
			return description{}, &core.SchemaShapeError{
				Command: sql,
				Field:   c.Field,
				Index:   c.Index,
				Want:    c.Field,
				Got:     got,
			}
		}
	}

	return description{
		Body:     rows[layout.Body.Index].Value,
		Imports:  rows[layout.Imports.Index].Value,
		Handler:  rows[layout.Handler.Index].Value,
		Packages: rows[layout.Packages.Index].Value,
	}, nil
}
