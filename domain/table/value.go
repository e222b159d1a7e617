package table

import (
	"fmt"
	"strconv"
)

// ValueType defines the storage type for cell values
type ValueType string

const (
	TypeNumeric ValueType = "numeric"
	TypeString  ValueType = "string"
	TypeMissing ValueType = "missing"
)

// Value represents a single typed cell in a record table.
// The zero Value is missing.
type Value struct {
	kind ValueType
	num  float64
	str  string
}

// Numeric creates a numeric value
func Numeric(v float64) Value {
	return Value{kind: TypeNumeric, num: v}
}

// String creates a string value; the empty string collapses to missing
func String(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{kind: TypeString, str: s}
}

// Missing creates a missing value
func Missing() Value {
	return Value{kind: TypeMissing}
}

// Type returns the value type
func (v Value) Type() ValueType {
	if v.kind == "" {
		return TypeMissing
	}
	return v.kind
}

// IsMissing reports whether the value is absent
func (v Value) IsMissing() bool {
	return v.Type() == TypeMissing
}

// IsNumeric reports whether the value holds a number
func (v Value) IsNumeric() bool {
	return v.kind == TypeNumeric
}

// Float returns the numeric content, or 0 for non-numeric values
func (v Value) Float() float64 {
	return v.num
}

// Label returns the string content, or empty for non-string values
func (v Value) Label() string {
	return v.str
}

// Render returns a display representation of the value
func (v Value) Render() string {
	switch v.Type() {
	case TypeNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case TypeString:
		return v.str
	default:
		return "<missing>"
	}
}

// GoString implements fmt.GoStringer for readable test failures
func (v Value) GoString() string {
	return fmt.Sprintf("table.Value(%s:%s)", v.Type(), v.Render())
}
