package core

import (
	"fmt"
	"strings"
)

// ConnectionError is returned when warehouse credentials are missing or rejected.
// It is never retried: credentials are static for the process lifetime.
type ConnectionError struct {
	Account string
	Missing []string
	Err     error
}

func (e *ConnectionError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing warehouse credentials: %s\nHint: set SNOWSQL_ACT, SNOWSQL_USR, SNOWSQL_PWD, SNOWSQL_ROL, SNOWSQL_DBT, SNOWSQL_WRH and SNOWSQL_SCH",
			strings.Join(e.Missing, ", "))
	}
	if e.Account != "" {
		return fmt.Sprintf("failed to connect to account %q: %v", e.Account, e.Err)
	}
	return fmt.Sprintf("failed to connect to warehouse: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError is returned when the warehouse rejects a command.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.SQL, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// SchemaShapeError signals that a warehouse result no longer has the shape
// the decoders expect (upstream metadata-schema drift).
type SchemaShapeError struct {
	Command string
	Field   string
	Index   int
	Want    string
	Got     string
}

func (e *SchemaShapeError) Error() string {
	return fmt.Sprintf("unexpected result shape for %q: %s at position %d: want %s, got %s\nHint: the warehouse metadata schema changed; update the decoder layout",
		e.Command, e.Field, e.Index, e.Want, e.Got)
}
