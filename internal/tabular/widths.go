package tabular

import (
	"fmt"
	"unicode/utf8"
)

// WidthsOf computes each column's width: the maximum rune count among that
// column's values. Header labels are not measured, so a header longer than
// every value in its column will overflow the column visually; that is
// accepted, not corrected.
func WidthsOf(columns [][]string) ([]int, error) {
	widths := make([]int, len(columns))
	for i, column := range columns {
		if len(column) == 0 {
			return nil, fmt.Errorf("column %d has no values: %w", i, ErrNoRecords)
		}
		for _, cell := range column {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths, nil
}
