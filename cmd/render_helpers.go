package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tabx/internal/export"
	"github.com/oakwood-commons/tabx/internal/tabular"
	"github.com/oakwood-commons/tabx/pkg/record"
	"github.com/oakwood-commons/tabx/pkg/table"
)

const (
	outputTable    = "table"
	outputCSV      = "csv"
	outputMarkdown = "markdown"
	outputJSON     = "json"
	outputYAML     = "yaml"
)

func isValidOutputFormat(value string) bool {
	switch value {
	case outputTable, outputCSV, outputMarkdown, outputJSON, outputYAML:
		return true
	}
	return false
}

func validateOutputFormat(value string) error {
	if !isValidOutputFormat(value) {
		return fmt.Errorf("invalid output format %q (expected table, csv, markdown, json, or yaml)", value)
	}
	return nil
}

// renderOutput renders records in the requested format. The missing-field
// mode applies to every format: under fail mode a record lacking one of the
// headers aborts the render before a byte is emitted, even for formats that
// would otherwise tolerate the gap.
func renderOutput(format string, records []record.Record, headers []string, mode table.MissingFieldMode, placeholder string) (string, error) {
	if mode == table.MissingFieldFail && format != outputTable {
		if _, err := tabular.SplitIntoColumns(records, headers, tabular.Options{FailOnMissing: true}); err != nil {
			return "", err
		}
	}

	switch format {
	case outputTable:
		r := table.New(table.WithMissingFieldMode(mode), table.WithPlaceholder(placeholder))
		return r.Render(records, headers)
	case outputCSV:
		return export.CSV(records, headers, export.Options{Placeholder: placeholder})
	case outputMarkdown:
		return export.Markdown(records, headers, export.Options{Placeholder: placeholder})
	case outputJSON:
		return export.JSON(records, headers)
	case outputYAML:
		return export.YAML(records, headers)
	default:
		return "", fmt.Errorf("invalid output format %q (expected table, csv, markdown, json, or yaml)", format)
	}
}

// logRenderDiagnostics reports alignment hazards at debug verbosity. Rune
// count drives column sizing, so cells whose terminal display width differs
// (wide CJK glyphs, combining marks) may drift, and tables wider than the
// terminal will wrap. Neither is corrected, only reported.
func logRenderDiagnostics(lgr logr.Logger, out string) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	maxRunes := 0
	drifted := 0
	for _, line := range lines {
		runes := utf8.RuneCountInString(line)
		if runes > maxRunes {
			maxRunes = runes
		}
		if runewidth.StringWidth(line) != runes {
			drifted++
		}
	}
	if drifted > 0 {
		lgr.V(1).Info("display width differs from rune count; columns may drift on terminals", "lines", drifted)
	}
	if stdoutIsPiped() {
		return
	}
	if width, _, err := termGetSize(int(os.Stdout.Fd())); err == nil && width > 0 && maxRunes > width {
		lgr.V(1).Info("output is wider than the terminal; lines will wrap", "width", maxRunes, "terminal", width)
	}
}
