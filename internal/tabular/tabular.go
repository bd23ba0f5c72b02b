package tabular

import (
	"strings"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// Options control how column extraction treats a record that lacks one of
// the selected headers.
type Options struct {
	// Placeholder is the textual stand-in for absent fields when
	// FailOnMissing is unset. The empty string keeps mismatched records
	// renderable without widening their columns.
	Placeholder string

	// FailOnMissing aborts the render on the first record lacking a selected
	// header instead of substituting Placeholder.
	FailOnMissing bool
}

// Render runs the full pipeline: project records into columns, size each
// column to its widest value, derive the row template and separator rule,
// then emit header line, rule, and one line per record. All derived state is
// computed before a single byte is produced, so a failed render yields no
// partial output.
func Render(records []record.Record, headers []string, opts Options) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if len(headers) == 0 {
		return "", ErrNoHeaders
	}

	columns, err := SplitIntoColumns(records, headers, opts)
	if err != nil {
		return "", err
	}
	widths, err := WidthsOf(columns)
	if err != nil {
		return "", err
	}
	rows, err := TransposeRows(columns)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := WriteTable(&sb, headers, FormatFor(widths), Separator(widths), rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}
