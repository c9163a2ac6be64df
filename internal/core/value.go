package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "missing"
	}
}

// missingRepr is the string representation of a missing cell.
const missingRepr = "undefined"

// Value is a single cell. Values parsed from a file keep their source text
// so export writes back exactly what was read.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool

	raw    string
	hasRaw bool
}

// MissingValue returns the value of an absent cell.
func MissingValue() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps f.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// withRaw records the text the value was parsed from.
func (v Value) withRaw(raw string) Value {
	v.raw = raw
	v.hasRaw = true
	return v
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the string payload; ok is false for non-string values.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload; ok is false for non-number values.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean payload; ok is false for non-boolean values.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String returns the representation used when values of different kinds are
// compared: numbers in shortest form, booleans as true/false and missing
// cells as "undefined".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return cast.ToString(v.b)
	default:
		return missingRepr
	}
}

// Text returns the cell as written on export. Missing cells are empty.
func (v Value) Text() string {
	if v.hasRaw {
		return v.raw
	}
	if v.kind == KindMissing {
		return ""
	}
	return v.String()
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// formatNumber writes f in shortest decimal form, switching to exponent form
// (1e+21, 1.5e-7) below 1e-6 and from 1e21 up.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 {
		return "0"
	}
	if abs >= 1e-6 && abs < 1e21 {
		return cast.ToString(f)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
