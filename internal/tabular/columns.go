package tabular

import (
	"fmt"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// SplitIntoColumns projects records into per-header columns of printable
// strings. Column i holds, in record order, the textual form of each
// record's value under headers[i].
func SplitIntoColumns(records []record.Record, headers []string, opts Options) ([][]string, error) {
	columns := make([][]string, len(headers))
	for i, header := range headers {
		column := make([]string, len(records))
		for j, rec := range records {
			cell, err := printableField(rec, header, j, opts)
			if err != nil {
				return nil, err
			}
			column[j] = cell
		}
		columns[i] = column
	}
	return columns, nil
}

// printableField resolves one cell. Fields a record does not carry follow the
// missing-field policy: substitute the placeholder, or fail naming the header
// and the record index. An explicit Missing value always renders the
// placeholder; only a structurally absent field can fail the render.
func printableField(rec record.Record, header string, index int, opts Options) (string, error) {
	value, ok := rec[header]
	if !ok || value == nil {
		if opts.FailOnMissing {
			return "", fmt.Errorf("record %d has no field %q: %w", index, header, ErrMissingField)
		}
		return opts.Placeholder, nil
	}
	if _, isMissing := value.(record.Missing); isMissing {
		return opts.Placeholder, nil
	}
	return value.String(), nil
}
