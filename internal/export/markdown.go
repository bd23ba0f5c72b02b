package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// GFM delimiter rows need at least three dashes per column.
const minDelimiterDashes = 3

// Markdown renders records as a GitHub-style pipe table. Columns are padded
// for readability, and markdown convention sizes a column over the header
// label as well as the data, unlike the plain table format.
func Markdown(records []record.Record, headers []string, opts Options) (string, error) {
	if err := guard(records, headers); err != nil {
		return "", err
	}

	head := make([]string, len(headers))
	widths := make([]int, len(headers))
	for i, header := range headers {
		head[i] = escapeMarkdownCell(header)
		widths[i] = utf8.RuneCountInString(head[i])
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, header := range headers {
			row[i] = escapeMarkdownCell(cell(rec, header, opts.Placeholder))
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
		rows = append(rows, row)
	}
	for i, w := range widths {
		if w < minDelimiterDashes {
			widths[i] = minDelimiterDashes
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, c := range cells {
			fmt.Fprintf(&sb, " %-*s |", widths[i], c)
		}
		sb.WriteString("\n")
	}

	writeRow(head)
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String(), nil
}

// escapeMarkdownCell keeps cell text on one table row: pipes are escaped so
// they do not terminate the cell, and line breaks collapse to spaces.
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
