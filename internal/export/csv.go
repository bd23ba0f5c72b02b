package export

import (
	"bytes"
	"strings"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// CSV renders records as comma-separated values: one header row in header
// order, then one row per record. Rows are "\n"-terminated.
func CSV(records []record.Record, headers []string, opts Options) (string, error) {
	if err := guard(records, headers); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(escapeCSVField(field))
		}
		buf.WriteString("\n")
	}

	writeRow(headers)
	row := make([]string, len(headers))
	for _, rec := range records {
		for i, header := range headers {
			row[i] = cell(rec, header, opts.Placeholder)
		}
		writeRow(row)
	}
	return buf.String(), nil
}

// escapeCSVField escapes a CSV field according to RFC 4180.
// Fields are quoted if they contain:
//   - Commas (required by RFC 4180)
//   - Double quotes (required by RFC 4180)
//   - Line breaks (newlines/carriage returns, required by RFC 4180)
//   - Spaces (common practice for readability, not required by RFC 4180)
//
// When a field is quoted, any double quotes inside are escaped by doubling them.
func escapeCSVField(field string) string {
	needsQuoting := strings.Contains(field, ",") ||
		strings.Contains(field, "\"") ||
		strings.Contains(field, "\n") ||
		strings.Contains(field, "\r") ||
		strings.Contains(field, " ") // Quote spaces for readability (not RFC required)

	if needsQuoting {
		// RFC 4180: Escape double quotes by doubling them
		escaped := strings.ReplaceAll(field, `"`, `""`)
		return `"` + escaped + `"`
	}
	return field
}
