package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// Value is a single flattened cell: a string, number, boolean, null, an opaque
// nested object, or undefined when the accessor path did not resolve.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  any
}

// Undefined is the value of an accessor path that does not resolve.
func Undefined() Value { return Value{} }

// Null is an explicit null.
func Null() Value { return Value{kind: KindNull} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Object wraps a nested value (map, slice, struct) that is displayed but not
// descended into further.
func Object(v any) Value { return Value{kind: KindObject, obj: v} }

// ValueOf converts a decoded JSON value (or any Go scalar) into a Value.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	case fmt.Stringer:
		return String(t.String())
	default:
		return Object(t)
	}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether the accessor path failed to resolve.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// Raw returns the underlying Go value (nil for undefined and null).
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		return v.obj
	default:
		return nil
	}
}

// String is the display and comparison form. Undefined and null render as
// the empty string; objects render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindObject:
		data, err := json.Marshal(v.obj)
		if err != nil {
			return fmt.Sprint(v.obj)
		}
		return string(data)
	default:
		return ""
	}
}

// Truthy follows the usual dynamic-language rules: undefined, null, false,
// zero, NaN and the empty string are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBool:
		return v.b
	case KindObject:
		return true
	default:
		return false
	}
}

// IsZero reports whether v is exactly the number zero.
func (v Value) IsZero() bool {
	return v.kind == KindNumber && v.num == 0
}

// Empty reports whether v is falsy and not the number zero. Empty values are
// grouped under the "(empty)" filter option.
func (v Value) Empty() bool {
	return !v.Truthy() && !v.IsZero()
}

// MarshalJSON encodes the raw value; undefined encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

// MarshalYAML encodes the raw value.
func (v Value) MarshalYAML() (any, error) {
	return v.Raw(), nil
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'e', -1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
