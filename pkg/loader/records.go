package loader

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// scalarField is the header under which bare scalar documents (NDJSON plain
// strings, arrays of scalars) surface as single-column records.
const scalarField = "value"

// Set is a loaded record collection plus the header order its source
// implies. Formats with inherent column order (CSV, markdown tables, JWT)
// keep it; object formats derive the sorted union of field names, since Go
// maps carry no order of their own.
type Set struct {
	Records []record.Record
	Headers []string
}

// fromDocuments converts decoded documents into a Set. A mapping document
// becomes one record; an array document is flattened, with mapping elements
// becoming records and scalar elements becoming single-column records; a
// bare scalar document becomes a single-column record. Nil documents are
// skipped.
func fromDocuments(docs []any) (*Set, error) {
	records := make([]record.Record, 0, len(docs))
	for _, doc := range docs {
		switch v := doc.(type) {
		case nil:
			continue
		case map[string]any:
			records = append(records, record.FromMap(v))
		case []any:
			for _, elem := range v {
				records = append(records, elementRecord(elem))
			}
		default:
			records = append(records, record.Record{scalarField: record.FromAny(v)})
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no records found in input")
	}
	return &Set{Records: records, Headers: record.FieldUnion(records)}, nil
}

func elementRecord(elem any) record.Record {
	if m, ok := elem.(map[string]any); ok {
		return record.FromMap(m)
	}
	return record.Record{scalarField: record.FromAny(elem)}
}

// FromObject builds a Set from an already parsed value (maps, slices,
// structs, etc.). Strings and byte slices go through the format-detecting
// loaders; custom structs and typed slices are normalized through a JSON
// round-trip so struct tags decide the field names.
func FromObject(value any) (*Set, error) {
	if value == nil {
		return nil, fmt.Errorf("object input is nil")
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive // only nilable kinds need the check
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, fmt.Errorf("object input is nil")
		}
	}

	switch v := value.(type) {
	case string:
		return LoadData(v)
	case []byte:
		return LoadBytes(v)
	case map[string]any:
		return fromDocuments([]any{v})
	case []any:
		return fromDocuments(v)
	case []map[string]any:
		docs := make([]any, len(v))
		for i, m := range v {
			docs[i] = m
		}
		return fromDocuments(docs)
	case []record.Record:
		if len(v) == 0 {
			return nil, fmt.Errorf("no records found in input")
		}
		return &Set{Records: v, Headers: record.FieldUnion(v)}, nil
	default:
		// JSON round-trip converts custom types to plain maps and slices,
		// honoring json struct tags along the way.
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cannot convert object to records: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("cannot convert object to records: %w", err)
		}
		if doc == nil {
			return nil, fmt.Errorf("object input is nil")
		}
		return fromDocuments([]any{doc})
	}
}
