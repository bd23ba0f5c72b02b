package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// loadCSV converts CSV data into a Set: the first row supplies the headers,
// every following row becomes a record keyed by those headers. Column order
// follows the file, not a sort. Short rows are padded with empty cells.
func loadCSV(data []byte) (*Set, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no records found in input")
	}

	// First row contains headers
	headers := rows[0]
	records := make([]record.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rec := make(record.Record, len(headers))
		for j, header := range headers {
			value := ""
			if j < len(rows[i]) {
				value = rows[i][j]
			}
			rec[header] = record.Text(value)
		}
		records = append(records, rec)
	}

	return &Set{Records: records, Headers: headers}, nil
}

// isLikelyCSV heuristic: the first line must split into multiple comma
// separated fields, and the input must not already parse into structured
// YAML or JSON. A plain multi-line scalar is not structure, so ordinary CSV
// passing through the YAML parser does not disqualify it.
func isLikelyCSV(input string) bool {
	reader := csv.NewReader(strings.NewReader(input))
	firstRow, err := reader.Read()
	if err != nil || len(firstRow) < 2 {
		return false
	}

	var probe any
	if yaml.Unmarshal([]byte(input), &probe) == nil && isStructured(probe) {
		return false
	}
	return true
}

// isStructured reports whether v is a map or slice (i.e. carries fields or
// elements of its own).
func isStructured(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
