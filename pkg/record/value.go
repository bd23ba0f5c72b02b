// Package record defines the value model consumed by the table pipeline: a
// closed set of printable cell-value variants and the Record mapping that
// becomes one output row.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Value is a single cell value. The set of implementations is closed: Text,
// Integer, Float, and Missing. Every variant carries its own canonical
// textual conversion via String, and none of those conversions can fail.
type Value interface {
	fmt.Stringer
	isValue()
}

// Text is a value that is already textual; String returns it unchanged.
type Text string

func (t Text) String() string { return string(t) }
func (Text) isValue()         {}

// Integer renders as decimal digits.
type Integer int64

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (Integer) isValue()         {}

// Float renders in the shortest 'g' form that round-trips a float64.
type Float float64

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (Float) isValue()         {}

// Missing marks a field that was absent from a record (or decoded from an
// explicit null). Its canonical text is the empty string; the pipeline may
// substitute a configured placeholder or reject the record instead, see the
// missing-field options in the table package.
type Missing struct{}

func (Missing) String() string { return "" }
func (Missing) isValue()       {}

// FromAny converts an arbitrary decoded value, as produced by the JSON, YAML,
// and TOML decoders, into its Value variant. Strings pass through as Text,
// nil becomes Missing, booleans render through strconv, and nested maps or
// slices collapse to compact JSON text so table cells stay single-line.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Missing{}
	case Value:
		return t
	case string:
		return Text(t)
	case bool:
		return Text(strconv.FormatBool(t))
	case int:
		return Integer(t)
	case int8:
		return Integer(t)
	case int16:
		return Integer(t)
	case int32:
		return Integer(t)
	case int64:
		return Integer(t)
	case uint:
		return Integer(int64(t))
	case uint8:
		return Integer(int64(t))
	case uint16:
		return Integer(int64(t))
	case uint32:
		return Integer(int64(t))
	case uint64:
		if t > math.MaxInt64 {
			return Text(strconv.FormatUint(t, 10))
		}
		return Integer(int64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case map[string]any, []any:
		// marshal to compact JSON for readability in a single cell
		if b, err := json.Marshal(t); err == nil {
			return Text(b)
		}
		return Text(fmt.Sprintf("%v", t))
	default:
		// Reflection handles remaining composite types so embedded users
		// passing native Go structs or typed maps get JSON output instead of
		// Go's default representation like "map[key:value]".
		rv := reflect.ValueOf(v)
		switch rv.Kind() { //nolint:exhaustive // only composite kinds need JSON marshaling
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			if b, err := json.Marshal(v); err == nil {
				return Text(b)
			}
		case reflect.Ptr:
			if rv.IsNil() {
				return Missing{}
			}
			return FromAny(rv.Elem().Interface())
		}
		return Text(fmt.Sprint(v))
	}
}

// Native is the inverse of FromAny for the closed set: Text yields string,
// Integer int64, Float float64, and Missing nil. The export package uses it
// to re-serialize projected records as JSON or YAML.
func Native(v Value) any {
	switch t := v.(type) {
	case Text:
		return string(t)
	case Integer:
		return int64(t)
	case Float:
		return float64(t)
	default:
		return nil
	}
}
