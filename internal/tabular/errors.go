package tabular

import "errors"

var (
	// ErrNoRecords reports an empty record set. With no data values a column
	// has no defined width, so rendering refuses to produce a degenerate
	// table instead of guessing.
	ErrNoRecords = errors.New("no records to render")

	// ErrNoHeaders reports an empty header selection.
	ErrNoHeaders = errors.New("no headers selected")

	// ErrMissingField reports a record that lacks a selected header while the
	// missing-field policy is set to fail.
	ErrMissingField = errors.New("missing field")

	// ErrColumnMismatch reports unequal column lengths during row
	// reconstruction. It indicates a bug in column extraction, not bad input.
	ErrColumnMismatch = errors.New("column length mismatch")
)
