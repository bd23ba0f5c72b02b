package tabular

import (
	"fmt"
	"strings"
)

const (
	columnSeparator = " | "
	ruleConnector   = "-+-"
)

// FormatFor derives the row template for a set of column widths: one
// left-justified string verb per column at exactly that width, columns
// joined by " | ", terminated by a newline. Rendering a line is then a
// single fmt call with one string argument per column.
func FormatFor(widths []int) string {
	verbs := make([]string, len(widths))
	for i, width := range widths {
		verbs[i] = fmt.Sprintf("%%-%ds", width)
	}
	return strings.Join(verbs, columnSeparator) + "\n"
}

// Separator builds the rule between the header and data lines: a run of
// width dashes per column, joined by "-+-". The caller terminates the line.
func Separator(widths []int) string {
	runs := make([]string, len(widths))
	for i, width := range widths {
		runs[i] = strings.Repeat("-", width)
	}
	return strings.Join(runs, ruleConnector)
}
