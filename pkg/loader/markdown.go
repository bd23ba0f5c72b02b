package loader

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// loadMarkdownTable parses the first pipe table in a markdown document into
// a Set. Header cells supply the headers in source order; every body row
// becomes a record. Inline markup inside cells is flattened to its text.
func loadMarkdownTable(input string) (*Set, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(input))

	table := findFirstTable(doc)
	if table == nil {
		return nil, fmt.Errorf("no table found in markdown input")
	}

	var headers []string
	var rows [][]string
	for _, section := range table.GetChildren() {
		switch section.(type) {
		case *ast.TableHeader:
			for _, row := range section.GetChildren() {
				headers = rowCells(row)
			}
		case *ast.TableBody:
			for _, row := range section.GetChildren() {
				rows = append(rows, rowCells(row))
			}
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("markdown table has no header row")
	}

	records := make([]record.Record, 0, len(rows))
	for _, cells := range rows {
		rec := make(record.Record, len(headers))
		for j, header := range headers {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			rec[header] = record.Text(value)
		}
		records = append(records, rec)
	}

	return &Set{Records: records, Headers: headers}, nil
}

func findFirstTable(doc ast.Node) ast.Node {
	var table ast.Node
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if _, ok := node.(*ast.Table); ok && entering {
			table = node
			return ast.Terminate
		}
		return ast.GoToNext
	})
	return table
}

func rowCells(row ast.Node) []string {
	var cells []string
	for _, cell := range row.GetChildren() {
		if _, ok := cell.(*ast.TableCell); ok {
			cells = append(cells, strings.TrimSpace(cellText(cell)))
		}
	}
	return cells
}

// cellText collects the literal text of a cell's subtree, which drops
// emphasis and link markup but keeps their visible content.
func cellText(cell ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(cell, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Literal)
		case *ast.Code:
			sb.Write(v.Literal)
		}
		return ast.GoToNext
	})
	return sb.String()
}

// isLikelyMarkdownTable heuristic: a pipe-bearing first line followed by a
// delimiter row made of dashes, colons, pipes, and spaces. Both lines must
// carry a pipe, which keeps YAML block scalars and document separators from
// matching.
func isLikelyMarkdownTable(input string) bool {
	var firstTwo []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		firstTwo = append(firstTwo, trimmed)
		if len(firstTwo) == 2 {
			break
		}
	}
	if len(firstTwo) < 2 {
		return false
	}
	if !strings.Contains(firstTwo[0], "|") {
		return false
	}

	delimiter := firstTwo[1]
	if !strings.Contains(delimiter, "-") || !strings.Contains(delimiter, "|") {
		return false
	}
	for _, r := range delimiter {
		switch r {
		case '|', '-', ':', ' ':
		default:
			return false
		}
	}
	return true
}
