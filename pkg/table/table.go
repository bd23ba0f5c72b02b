// Package table is the public entry point for rendering records as
// fixed-width text tables. A Renderer carries the missing-field policy;
// everything else is derived per call from the records and headers given.
package table

import (
	"io"

	"github.com/oakwood-commons/tabx/internal/tabular"
	"github.com/oakwood-commons/tabx/pkg/record"
)

// MissingFieldMode selects how a record lacking one of the headers is
// treated during rendering.
type MissingFieldMode string

const (
	// MissingFieldPlaceholder substitutes the configured placeholder string.
	MissingFieldPlaceholder MissingFieldMode = "placeholder"
	// MissingFieldFail aborts the render naming the header and record index.
	MissingFieldFail MissingFieldMode = "fail"
)

// Errors surfaced by Render, re-exported so callers can match them with
// errors.Is without reaching into internal packages.
var (
	ErrNoRecords      = tabular.ErrNoRecords
	ErrNoHeaders      = tabular.ErrNoHeaders
	ErrMissingField   = tabular.ErrMissingField
	ErrColumnMismatch = tabular.ErrColumnMismatch
)

// Renderer renders record collections as aligned text tables.
type Renderer struct {
	MissingFieldMode MissingFieldMode
	Placeholder      string
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithMissingFieldMode sets the missing-field policy.
func WithMissingFieldMode(mode MissingFieldMode) Option {
	return func(r *Renderer) {
		r.MissingFieldMode = mode
	}
}

// WithPlaceholder sets the textual stand-in for absent fields under the
// placeholder policy.
func WithPlaceholder(placeholder string) Option {
	return func(r *Renderer) {
		r.Placeholder = placeholder
	}
}

// New creates a Renderer with defaults: placeholder policy, empty-string
// placeholder.
func New(opts ...Option) *Renderer {
	renderer := &Renderer{
		MissingFieldMode: MissingFieldPlaceholder,
	}
	for _, opt := range opts {
		opt(renderer)
	}
	return renderer
}

// Render returns the table for records projected through headers: one header
// line, one separator rule, one line per record, every line newline
// terminated. Headers select and order the columns; each column is sized to
// its widest data value.
func (r *Renderer) Render(records []record.Record, headers []string) (string, error) {
	return tabular.Render(records, headers, r.pipelineOptions())
}

// Fprint renders the table and writes it to w. The text is computed in full
// before the write, so nothing reaches w on a failed render.
func (r *Renderer) Fprint(w io.Writer, records []record.Record, headers []string) error {
	out, err := r.Render(records, headers)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (r *Renderer) pipelineOptions() tabular.Options {
	if r == nil {
		return tabular.Options{}
	}
	return tabular.Options{
		Placeholder:   r.Placeholder,
		FailOnMissing: r.MissingFieldMode == MissingFieldFail,
	}
}

// Render renders records through a default Renderer. It is the one-call form
// for callers that do not need to configure a policy.
func Render(records []record.Record, headers []string) (string, error) {
	return New().Render(records, headers)
}
