package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// List issues exactly one listing command for the category and returns every
// row, unfiltered and in warehouse order.
func List(ctx context.Context, q Querier, cat core.Category) ([]core.ListingRow, error) {
	sql := cat.ShowSQL()
	rs, err := q.FetchAll(ctx, sql)
	if err != nil {
		return nil, err
	}
	return decodeListing(sql, rs)
}

// decodeListing validates the header once, then reads each row by the
// validated positions.
func decodeListing(sql string, rs *core.ResultSet) ([]core.ListingRow, error) {
	cols := listingColumns
	if err := checkHeader(sql, rs.Columns, cols.all()); err != nil {
		return nil, err
	}

	rows := make([]core.ListingRow, 0, rs.Len())
	for i, raw := range rs.Rows {
		if len(raw) != len(rs.Columns) {
			return nil, &core.SchemaShapeError{
				Command: sql,
				Field:   fmt.Sprintf("row %d", i),
				Index:   len(raw),
				Want:    fmt.Sprintf("%d values", len(rs.Columns)),
				Got:     fmt.Sprintf("%d values", len(raw)),
			}
		}

		created, err := timestamp(raw[cols.CreatedOn.Index])
		if err != nil {
			return nil, &core.SchemaShapeError{
				Command: sql,
				Field:   cols.CreatedOn.Field,
				Index:   cols.CreatedOn.Index,
				Want:    "timestamp",
				Got:     err.Error(),
			}
		}

		rows = append(rows, core.ListingRow{
			CreatedOn:     created,
			Name:          text(raw[cols.Name.Index]),
			Schema:        text(raw[cols.Schema.Index]),
			Builtin:       text(raw[cols.Builtin.Index]),
			Aggregate:     text(raw[cols.Aggregate.Index]),
			Signature:     text(raw[cols.Signature.Index]),
			Description:   text(raw[cols.Description.Index]),
			Database:      text(raw[cols.Database.Index]),
			TableFunction: text(raw[cols.TableFunction.Index]),
			Clustering:    text(raw[cols.Clustering.Index]),
			Secure:        text(raw[cols.Secure.Index]),
		})
	}
	return rows, nil
}

// checkHeader fails unless every required column sits at its expected position.
func checkHeader(sql string, header []string, want []column) error {
	if need := maxIndex(want) + 1; len(header) < need {
		return &core.SchemaShapeError{
			Command: sql,
			Field:   "columns",
			Index:   len(header),
			Want:    fmt.Sprintf("at least %d columns", need),
			Got:     fmt.Sprintf("%d columns", len(header)),
		}
	}
	for _, c := range want {
		if !strings.EqualFold(strings.TrimSpace(header[c.Index]), c.Field) {
			return &core.SchemaShapeError{
				Command: sql,
				Field:   c.Field,
				Index:   c.Index,
				Want:    c.Field,
				Got:     header[c.Index],
			}
		}
	}
	return nil
}
