package core

// convert.go turns raw CSV cells into Values.
//
// The generic variant infers types the way spreadsheet exports are usually
// read back: plain decimal numbers become numbers, the literals true/TRUE and
// false/FALSE become booleans, and everything else stays a string. The cards
// variant never infers; it only trims.

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// numericRegex matches integers, decimals and scientific notation with no
// sign other than a leading minus, thousands separators or currency symbols.
var numericRegex = regexp.MustCompile(`^\s*-?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// maxExactFloat bounds the magnitudes read as numbers. Past it float64 can no
// longer hold every integer, so long codes (UPCs, serials) stay strings.
const maxExactFloat = 1 << 53

// ParseNumber reports whether s is a plain numeric literal and returns its
// value. Literals whose magnitude reaches 2^53 are not numbers.
func ParseNumber(s string) (float64, bool) {
	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || f <= -maxExactFloat || f >= maxExactFloat {
		return 0, false
	}
	return f, true
}

// ParseBoolLiteral accepts only true/TRUE/false/FALSE.
func ParseBoolLiteral(s string) (bool, bool) {
	switch s {
	case "true", "TRUE":
		return true, true
	case "false", "FALSE":
		return false, true
	}
	return false, false
}

// InferValue converts a raw cell using dynamic typing. The source text is kept
// on the returned value.
func InferValue(raw string) Value {
	if b, ok := ParseBoolLiteral(raw); ok {
		return BoolValue(b).withRaw(raw)
	}
	if f, ok := ParseNumber(raw); ok {
		return NumberValue(f).withRaw(raw)
	}
	return StringValue(raw)
}

// TextValue converts a raw cell without type inference.
func TextValue(raw string, trim bool) Value {
	if trim {
		raw = strings.TrimSpace(raw)
	}
	return StringValue(raw)
}

// CleanHeader normalizes a header cell: surrounding whitespace and an Excel
// formula wrapper (="Name") are removed.
func CleanHeader(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}
