package feed

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the inferred type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a loosely-typed scalar read from a feed cell.
//
// Feeds carry no type information, so the reader infers numbers and booleans
// where the cell text is unambiguous and leaves everything else as a string.
// Empty cells are null. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null is the absent value.
var Null = Value{}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number-kinded Value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue returns a bool-kinded Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's inferred kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value as text. Numbers use the shortest representation
// that round-trips; null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Float returns the value as a float64. String values are parsed; the second
// return reports whether a numeric interpretation exists.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Bool returns the value as a bool and whether a boolean interpretation exists.
func (v Value) Bool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// Record is one feed row: a mapping from header column name to cell value.
type Record map[string]Value

// Lookup returns the value for a column and whether the column is present
// with a non-null value.
func (r Record) Lookup(col string) (Value, bool) {
	v, ok := r[col]
	if !ok || v.IsNull() {
		return Null, false
	}
	return v, true
}

// numericCell matches cells that can be safely treated as numbers.
var numericCell = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// inferValue converts raw cell text to a typed Value. Empty cells become
// null; unambiguous numeric and boolean text is typed; everything else stays
// a string.
func inferValue(cell string) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Null
	}

	if numericCell.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return NumberValue(f)
		}
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	return StringValue(cell)
}
