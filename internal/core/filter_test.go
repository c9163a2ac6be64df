package core

import "testing"

func TestNoiseFilter_DropsPullSheetRows(t *testing.T) {
	ds := NewDataset([]string{"Number", "Product Name"}, []Record{
		{"Number": StringValue("LOB-001"), "Product Name": StringValue("Blue-Eyes")},
		{"Number": StringValue(""), "Product Name": StringValue("Orders Contained in Pull Sheet - Page 1")},
		{"Number": StringValue("LOB-002"), "Product Name": StringValue("Dark Magician")},
	})

	f := NoiseFilter{Substrings: []string{PullSheetMarker}}
	out, removed := f.Apply(ds)

	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if out.Len() != 2 {
		t.Fatalf("Len = %d, want 2", out.Len())
	}
	if got, _ := out.Records[0].Get("Number").Str(); got != "LOB-001" {
		t.Errorf("first record = %q, want LOB-001", got)
	}
	if got, _ := out.Records[1].Get("Number").Str(); got != "LOB-002" {
		t.Errorf("second record = %q, want LOB-002", got)
	}
	if ds.Len() != 3 {
		t.Error("input dataset was modified")
	}
}

func TestNoiseFilter_CaseSensitivity(t *testing.T) {
	rec := Record{"a": StringValue("see PULL SHEET below")}

	tests := []struct {
		name string
		f    NoiseFilter
		want bool
	}{
		{"case sensitive misses", NoiseFilter{Substrings: []string{"pull sheet"}}, false},
		{"case insensitive matches", NoiseFilter{Substrings: []string{"pull sheet"}, CaseInsensitive: true}, true},
		{"no substrings", NoiseFilter{CaseInsensitive: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoiseFilter_SkipsNonStrings(t *testing.T) {
	f := NoiseFilter{Substrings: []string{"1"}}
	rec := Record{"qty": NumberValue(1), "ok": BoolValue(true), "gone": MissingValue()}
	if f.Matches(rec) {
		t.Error("non-string values must not be inspected")
	}
}

func TestNoiseFilter_Idempotent(t *testing.T) {
	ds := NewDataset([]string{"a"}, []Record{
		{"a": StringValue("x")},
		{"a": StringValue(PullSheetMarker)},
		{"a": StringValue("y")},
	})
	f := NoiseFilter{Substrings: []string{PullSheetMarker}}

	once, _ := f.Apply(ds)
	twice, removed := f.Apply(once)

	if removed != 0 {
		t.Errorf("second pass removed %d records", removed)
	}
	if once.Len() != twice.Len() {
		t.Errorf("second pass changed length %d -> %d", once.Len(), twice.Len())
	}
}
