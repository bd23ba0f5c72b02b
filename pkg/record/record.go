package record

import "sort"

// Record maps field names to cell values. Records are caller-owned and never
// mutated by the pipeline; one record becomes one table row.
type Record map[string]Value

// FromMap converts a decoded object into a Record, passing every value
// through FromAny.
func FromMap(m map[string]any) Record {
	rec := make(Record, len(m))
	for k, v := range m {
		rec[k] = FromAny(v)
	}
	return rec
}

// Fields returns the record's field names in ascending order. Map iteration
// order is random, so anything deriving headers from records goes through
// this to stay deterministic.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for k := range r {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// FieldUnion returns the sorted union of field names across all records.
// Records that lack one of the resulting fields surface that field as
// Missing when rendered.
func FieldUnion(records []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	union := make([]string, 0, len(seen))
	for k := range seen {
		union = append(union, k)
	}
	sort.Strings(union)
	return union
}
