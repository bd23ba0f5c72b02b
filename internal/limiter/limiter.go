package limiter

import (
	"fmt"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// Config holds the record-windowing parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}

	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}

	return nil
}

// IsActive returns true if any windowing is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the windowed subset of records. Tail wins over Offset and
// Limit; the result shares backing storage with the input.
func (c Config) Apply(records []record.Record) []record.Record {
	if !c.IsActive() {
		return records
	}

	length := len(records)

	// Handle --tail (show last N records)
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return records[start:]
	}

	// Handle --offset and --limit
	start := c.Offset
	if start > length {
		start = length
	}

	end := length
	if c.Limit > 0 {
		end = start + c.Limit
		if end > length {
			end = length
		}
	}

	if start > end {
		start = end
	}

	return records[start:end]
}
