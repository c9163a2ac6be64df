package core

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestIngest_HeaderAndRows(t *testing.T) {
	in := "name,price,foil\nBlue-Eyes,10,true\nKuriboh,0.5,FALSE\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{InferTypes: true})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if want := []string{"name", "price", "foil"}; !slices.Equal(ds.Columns, want) {
		t.Errorf("Columns = %v, want %v", ds.Columns, want)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}
	if k := ds.Records[0].Get("price").Kind(); k != KindNumber {
		t.Errorf("price kind = %v, want number", k)
	}
	if b, ok := ds.Records[1].Get("foil").Bool(); !ok || b {
		t.Errorf("foil = %v, want false", ds.Records[1].Get("foil"))
	}
}

func TestIngest_StripsBOMAndRepairsUTF8(t *testing.T) {
	in := "\ufeffname\n" + "caf\xe9\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ds.Columns[0] != "name" {
		t.Errorf("header = %q, BOM not stripped", ds.Columns[0])
	}
	if got := ds.Records[0].Get("name").Text(); got != "caf\ufffd" {
		t.Errorf("value = %q, want replacement character", got)
	}
}

func TestIngest_TrimOption(t *testing.T) {
	in := " Number , Set \n LOB-001 ,  LOB \n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{Trim: true})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if want := []string{"Number", "Set"}; !slices.Equal(ds.Columns, want) {
		t.Errorf("Columns = %v, want %v", ds.Columns, want)
	}
	if got := ds.Records[0].Get("Set").Text(); got != "LOB" {
		t.Errorf("Set = %q, want LOB", got)
	}

	raw, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if got := raw.Records[0].Get(" Set ").Text(); got != "  LOB " {
		t.Errorf("untrimmed Set = %q", got)
	}
}

func TestIngest_RaggedRows(t *testing.T) {
	in := "a,b,c\n1\n1,2,3,4\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if !ds.Records[0].Get("c").IsMissing() {
		t.Errorf("short row c = %v, want missing", ds.Records[0].Get("c"))
	}
	if len(ds.Records[1]) != 3 {
		t.Errorf("long row has %d cells, want 3", len(ds.Records[1]))
	}
}

func TestIngest_DuplicateHeaders(t *testing.T) {
	in := "x,y,x\n1,2,3\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if want := []string{"x", "y"}; !slices.Equal(ds.Columns, want) {
		t.Errorf("Columns = %v, want %v", ds.Columns, want)
	}
	if got := ds.Records[0].Get("x").Text(); got != "3" {
		t.Errorf("x = %q, want last occurrence 3", got)
	}
}

func TestIngest_EmptyInputs(t *testing.T) {
	if _, err := Ingest(context.Background(), strings.NewReader(""), ParseOptions{}); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("zero-byte err = %v, want ErrEmptyFile", err)
	}

	ds, err := Ingest(context.Background(), strings.NewReader("a,b\n"), ParseOptions{})
	if err != nil {
		t.Fatalf("header-only: %v", err)
	}
	if !ds.IsEmpty() {
		t.Errorf("header-only Len = %d, want 0", ds.Len())
	}
}

func TestIngest_MalformedReturnsParseError(t *testing.T) {
	in := "a,b\n\"unterminated,1\n"

	_, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{})

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if !strings.Contains(pe.Error(), "quote") {
		t.Errorf("message = %q, want the parser's quote error", pe.Error())
	}
}

func TestIngest_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Ingest(ctx, strings.NewReader("a\n1\n"), ParseOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestIngest_BlankLines(t *testing.T) {
	in := "a,b\n\n1,x\n\n\n2,y\n\n"

	t.Run("kept as blank records", func(t *testing.T) {
		ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{InferTypes: true, KeepBlankLines: true})
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}
		if ds.Len() != 5 {
			t.Fatalf("Len = %d, want 5 (3 blank lines between records)", ds.Len())
		}
		for _, i := range []int{0, 2, 3} {
			rec := ds.Records[i]
			if s, ok := rec.Get("a").Str(); !ok || s != "" {
				t.Errorf("record %d a = %v, want empty string", i, rec.Get("a"))
			}
			if !rec.Get("b").IsMissing() {
				t.Errorf("record %d b = %v, want missing", i, rec.Get("b"))
			}
		}
		if got := ds.Records[4].Get("b").Text(); got != "y" {
			t.Errorf("last record b = %q, want y", got)
		}
	})

	t.Run("skipped by default", func(t *testing.T) {
		ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{Trim: true})
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}
		if ds.Len() != 2 {
			t.Errorf("Len = %d, want 2", ds.Len())
		}
	})

	t.Run("multi-line quoted field is not a gap", func(t *testing.T) {
		in := "a,b\n\"line one\nline two\",1\n2,3\n"
		ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{KeepBlankLines: true})
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}
		if ds.Len() != 2 {
			t.Errorf("Len = %d, want 2", ds.Len())
		}
	})
}

func TestIngest_BareQuoteInUnquotedCell(t *testing.T) {
	in := "name,qty\nStatue 12\" tall,1\n\"Quoted, name\",2\n"

	ds, err := Ingest(context.Background(), strings.NewReader(in), ParseOptions{InferTypes: true})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}
	if got := ds.Records[0].Get("name").Text(); got != `Statue 12" tall` {
		t.Errorf("name = %q, want the inch mark kept", got)
	}
	if got := ds.Records[1].Get("name").Text(); got != "Quoted, name" {
		t.Errorf("quoted name = %q", got)
	}
}
