package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

func TestList(t *testing.T) {
	tests := []struct {
		name string
		cat  core.Category
		sql  string
	}{
		{name: "functions", cat: core.CategoryFunction, sql: "SHOW USER FUNCTIONS"},
		{name: "procedures", cat: core.CategoryProcedure, sql: "SHOW USER PROCEDURES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp, mock := newMockAdapter(t)
			other := fn("OTHER", "OTHER() RETURN NUMBER")
			other.schema = "STAGING"
			mock.ExpectQuery(tt.sql).WillReturnRows(listingRows(
				fn("ADD", "ADD(A NUMBER, B NUMBER) RETURN NUMBER"),
				other,
				proc("LOAD", "LOAD() RETURN VARCHAR"),
			))

			rows, err := List(context.Background(), adp, tt.cat)
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())

			// Unfiltered and in warehouse order.
			require.Len(t, rows, 3)
			assert.Equal(t, "ADD", rows[0].Name)
			assert.Equal(t, "OTHER", rows[1].Name)
			assert.Equal(t, "STAGING", rows[1].Schema)
			assert.Equal(t, "LOAD", rows[2].Name)

			first := rows[0]
			assert.Equal(t, created, first.CreatedOn)
			assert.Equal(t, testSchema, first.Schema)
			assert.Equal(t, testDB, first.Database)
			assert.Equal(t, "ADD(A NUMBER, B NUMBER) RETURN NUMBER", first.Signature)
			assert.Equal(t, "user-defined function", first.Description)
			assert.Equal(t, "N", first.Builtin)
			assert.Equal(t, "N", first.Secure)
		})
	}
}

func TestList_Empty(t *testing.T) {
	adp, mock := newMockAdapter(t)
	mock.ExpectQuery("SHOW USER FUNCTIONS").WillReturnRows(sqlmock.NewRows(listingHeader))

	rows, err := List(context.Background(), adp, core.CategoryFunction)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestList_QueryError(t *testing.T) {
	adp, mock := newMockAdapter(t)
	denied := errors.New("insufficient privileges to operate on schema")
	mock.ExpectQuery("SHOW USER PROCEDURES").WillReturnError(denied)

	_, err := List(context.Background(), adp, core.CategoryProcedure)

	var qerr *core.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "SHOW USER PROCEDURES", qerr.SQL)
	assert.ErrorIs(t, err, denied)
}

func TestList_SchemaShape(t *testing.T) {
	shifted := append([]string{"owner"}, listingHeader...)
	renamed := append([]string(nil), listingHeader...)
	renamed[10] = "database_name"

	tests := []struct {
		name      string
		header    []string
		wantField string
	}{
		{name: "too few columns", header: listingHeader[:9], wantField: "columns"},
		{name: "shifted columns", header: shifted, wantField: "created_on"},
		{name: "renamed column", header: renamed, wantField: "catalog_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &core.ResultSet{Columns: tt.header}
			q := &fakeQuerier{results: map[string]*core.ResultSet{"SHOW USER FUNCTIONS": rs}}

			_, err := List(context.Background(), q, core.CategoryFunction)

			var shape *core.SchemaShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tt.wantField, shape.Field)
			assert.Equal(t, "SHOW USER FUNCTIONS", shape.Command)
		})
	}
}

func TestList_HeaderIsCaseInsensitive(t *testing.T) {
	header := make([]string, len(listingHeader))
	for i, h := range listingHeader {
		header[i] = "  " + h + " "
	}
	header[1] = "NAME"

	row := make([]any, len(header))
	row[0] = "2023-01-05 09:30:00.000 -0800"
	row[1] = "ADD"
	row[8] = "ADD() RETURN NUMBER"

	q := &fakeQuerier{results: map[string]*core.ResultSet{
		"SHOW USER FUNCTIONS": {Columns: header, Rows: [][]any{row}},
	}}

	rows, err := List(context.Background(), q, core.CategoryFunction)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ADD", rows[0].Name)
	assert.Equal(t, "Jan 05 2023", FormatCreated(rows[0].CreatedOn))
	assert.Empty(t, rows[0].Schema, "NULL text columns decode as empty strings")
}

func TestList_BadTimestamp(t *testing.T) {
	row := make([]any, len(listingHeader))
	row[0] = "yesterday"
	q := &fakeQuerier{results: map[string]*core.ResultSet{
		"SHOW USER FUNCTIONS": {Columns: listingHeader, Rows: [][]any{row}},
	}}

	_, err := List(context.Background(), q, core.CategoryFunction)

	var shape *core.SchemaShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "created_on", shape.Field)
}

func TestList_RaggedRow(t *testing.T) {
	q := &fakeQuerier{results: map[string]*core.ResultSet{
		"SHOW USER FUNCTIONS": {Columns: listingHeader, Rows: [][]any{{created, "ADD"}}},
	}}

	_, err := List(context.Background(), q, core.CategoryFunction)

	var shape *core.SchemaShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "row 0", shape.Field)
}
