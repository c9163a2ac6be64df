package core

import "testing"

func TestInferValue(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind Kind
		wantRepr string
	}{
		{"10", KindNumber, "10"},
		{"-2.5", KindNumber, "-2.5"},
		{"1e3", KindNumber, "1000"},
		{".5", KindNumber, "0.5"},
		{"true", KindBool, "true"},
		{"FALSE", KindBool, "false"},
		{"True", KindString, "True"},
		{"1,000", KindString, "1,000"},
		{"$5", KindString, "$5"},
		{"apple", KindString, "apple"},
		{"", KindString, ""},
		{"LOB-001-EN", KindString, "LOB-001-EN"},
		{"+5", KindString, "+5"},
		{"12345678901234567890", KindString, "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := InferValue(tt.raw)
			if v.Kind() != tt.wantKind {
				t.Errorf("InferValue(%q) kind = %v, want %v", tt.raw, v.Kind(), tt.wantKind)
			}
			if v.String() != tt.wantRepr {
				t.Errorf("InferValue(%q).String() = %q, want %q", tt.raw, v.String(), tt.wantRepr)
			}
			if v.Text() != tt.raw {
				t.Errorf("InferValue(%q).Text() = %q, want source text", tt.raw, v.Text())
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"3.", 3, true},
		{"+3", 0, false},
		{"2E-2", 0.02, true},
		{"1e999", 0, false},
		{"9007199254740991", 9007199254740991, true},
		{"9007199254740992", 0, false},
		{"-9007199254740992", 0, false},
		{"1e21", 0, false},
		{"12abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValueRepresentations(t *testing.T) {
	if got := MissingValue().String(); got != "undefined" {
		t.Errorf("missing String() = %q, want undefined", got)
	}
	if got := MissingValue().Text(); got != "" {
		t.Errorf("missing Text() = %q, want empty", got)
	}
	if got := NumberValue(30).String(); got != "30" {
		t.Errorf("NumberValue(30).String() = %q, want 30", got)
	}
	numbers := map[float64]string{
		0.25:    "0.25",
		1e-7:    "1e-7",
		-1.5e-7: "-1.5e-7",
		1e21:    "1e+21",
		1e20:    "100000000000000000000",
	}
	for f, want := range numbers {
		if got := NumberValue(f).String(); got != want {
			t.Errorf("NumberValue(%v).String() = %q, want %q", f, got, want)
		}
	}
	if got := BoolValue(true).String(); got != "true" {
		t.Errorf("BoolValue(true).String() = %q, want true", got)
	}
	if !InferValue("1.50").Equal(NumberValue(1.5)) {
		t.Error("1.50 and 1.5 should be equal numbers")
	}
	if StringValue("1").Equal(NumberValue(1)) {
		t.Error("values of different kinds should not be equal")
	}
}

func TestTextValue(t *testing.T) {
	if got, _ := TextValue("  Dark Magician ", true).Str(); got != "Dark Magician" {
		t.Errorf("trimmed = %q", got)
	}
	if got, _ := TextValue("  10 ", false).Str(); got != "  10 " {
		t.Errorf("untrimmed = %q", got)
	}
	if TextValue("10", true).Kind() != KindString {
		t.Error("TextValue must not infer types")
	}
}

func TestCleanHeader(t *testing.T) {
	tests := map[string]string{
		" Number ":        "Number",
		`="Product Name"`: "Product Name",
		`="`:              `="`,
		"Set":             "Set",
	}
	for in, want := range tests {
		if got := CleanHeader(in); got != want {
			t.Errorf("CleanHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
