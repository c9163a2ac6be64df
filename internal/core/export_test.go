package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSerialize_RoundTrip(t *testing.T) {
	in := "name,price,note\nBlue-Eyes,10.50,\"has, comma\"\nKuriboh,1e2,\"say \"\"hi\"\"\"\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{InferTypes: true})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	out, err := Serialize(ds)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip changed the file:\ngot  %q\nwant %q", out, in)
	}

	again, err := Ingest(context.Background(), strings.NewReader(string(out)), ParseOptions{InferTypes: true})
	if err != nil {
		t.Fatalf("re-Ingest: %v", err)
	}
	for i := range ds.Records {
		for _, col := range ds.Columns {
			if !ds.Records[i].Get(col).Equal(again.Records[i].Get(col)) {
				t.Errorf("row %d %s: %v != %v", i, col, ds.Records[i].Get(col), again.Records[i].Get(col))
			}
		}
	}
}

func TestSerialize_MissingCellsAreEmpty(t *testing.T) {
	ds := NewDataset([]string{"a", "b"}, []Record{{"a": StringValue("x")}})

	out, err := Serialize(ds)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got, want := string(out), "a,b\nx,\n"; got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestSerialize_Empty(t *testing.T) {
	if _, err := Serialize(Dataset{Columns: []string{"a"}}); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("err = %v, want ErrNothingToExport", err)
	}
}
