package query

import "errors"

var (
	// ErrNoTable indicates the builder was created without a table name
	ErrNoTable = errors.New("query.no_table")
)
