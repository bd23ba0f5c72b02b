package tabular

import (
	"fmt"
	"io"
)

// TransposeRows reconstructs per-record rows from per-header columns: row j
// draws the j-th value from every column, in column order. Columns must all
// be the same length; a mismatch means column extraction broke its contract,
// and the render aborts rather than truncating or padding.
func TransposeRows(columns [][]string) ([][]string, error) {
	if len(columns) == 0 {
		return nil, ErrNoHeaders
	}
	height := len(columns[0])
	for i, column := range columns {
		if len(column) != height {
			return nil, fmt.Errorf("column %d has %d values, want %d: %w", i, len(column), height, ErrColumnMismatch)
		}
	}
	rows := make([][]string, height)
	for j := range rows {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = column[j]
		}
		rows[j] = row
	}
	return rows, nil
}

// WriteTable emits the header line, the separator rule, and one line per row
// through the row template. The output is exactly len(rows)+2 lines, each
// newline-terminated.
func WriteTable(w io.Writer, headers []string, format, separator string, rows [][]string) error {
	if _, err := fmt.Fprintf(w, format, fieldArgs(headers)...); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, separator); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, format, fieldArgs(row)...); err != nil {
			return err
		}
	}
	return nil
}

func fieldArgs(cells []string) []any {
	args := make([]any, len(cells))
	for i, cell := range cells {
		args[i] = cell
	}
	return args
}
