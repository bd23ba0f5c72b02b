package export

import (
	"fmt"

	"github.com/oakwood-commons/tabx/internal/tabular"
	"github.com/oakwood-commons/tabx/pkg/record"
)

// Options adjust how the flat text formats render fields without a value.
type Options struct {
	// Placeholder substitutes absent fields and explicit missing values in
	// csv and markdown output. JSON and YAML emit null for explicit missing
	// values and omit absent fields entirely.
	Placeholder string
}

// guard rejects the degenerate inputs every emitter refuses the same way the
// table renderer does: no records and no headers both mean there is nothing
// to emit.
func guard(records []record.Record, headers []string) error {
	if len(records) == 0 {
		return fmt.Errorf("nothing to export: %w", tabular.ErrNoRecords)
	}
	if len(headers) == 0 {
		return fmt.Errorf("nothing to export: %w", tabular.ErrNoHeaders)
	}
	return nil
}

// cell returns the printable form of a record field for csv and markdown
// output. Absent fields and explicit missing values both collapse to the
// placeholder.
func cell(rec record.Record, header, placeholder string) string {
	v, ok := rec[header]
	if !ok {
		return placeholder
	}
	if _, missing := v.(record.Missing); missing {
		return placeholder
	}
	return v.String()
}
