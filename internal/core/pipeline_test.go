package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func testGenericDef() VariantDefinition {
	return VariantDefinition{
		Info:      VariantInfo{Key: "generic", ExportName: "sorted-data.csv", UserSortable: true},
		Parse:     ParseOptions{InferTypes: true},
		Filter:    NoiseFilter{Substrings: []string{PullSheetMarker}},
		Collation: CollateLocale,
	}
}

func testCardsDef() VariantDefinition {
	return VariantDefinition{
		Info:      VariantInfo{Key: "cards", ExportName: "sorted_cards.csv"},
		Parse:     ParseOptions{Trim: true},
		Filter:    NoiseFilter{Substrings: []string{PullSheetMarker, "pull sheet"}, CaseInsensitive: true},
		Normalize: NormalizeCards,
		FixedSpec: NewSortSpec(
			SortKey{CardSet, Ascending},
			SortKey{CardRarity, Ascending},
			SortKey{CardCondition, Ascending},
			SortKey{CardProductName, Ascending},
		),
		Collation: CollatePlain,
	}
}

func TestParseAndFilter_Cards(t *testing.T) {
	in := "Number,Quantity,Product Name,Set\n" +
		"LOB-001-EN,2,Blue-Eyes,LOB\n" +
		"Orders Contained in Pull Sheet - Page 1,,,\n" +
		"MRD-002-EN,,Kuriboh,MRD\n"

	res, err := ParseAndFilter(context.Background(), testCardsDef(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseAndFilter: %v", err)
	}

	if res.Parsed != 3 || res.Filtered != 1 {
		t.Errorf("Parsed/Filtered = %d/%d, want 3/1", res.Parsed, res.Filtered)
	}
	if res.Dataset.Len() != 2 {
		t.Fatalf("Len = %d, want 2", res.Dataset.Len())
	}
	if got := res.Dataset.Records[1].Get(CardQty).Text(); got != "1" {
		t.Errorf("qty = %q, want default 1", got)
	}
	if got := res.Dataset.Records[0].Get(CardNumberShort).Text(); got != "001-EN" {
		t.Errorf("numbershort = %q, want 001-EN", got)
	}
}

func TestParseAndFilter_PanicBecomesErrProcessing(t *testing.T) {
	def := testGenericDef()
	def.Normalize = func(Dataset) Dataset { panic("boom") }

	_, err := ParseAndFilter(context.Background(), def, strings.NewReader("a\n1\n"))
	if !errors.Is(err, ErrProcessing) {
		t.Errorf("err = %v, want ErrProcessing", err)
	}
}

func TestParseAndFilter_ParseErrorPassesThrough(t *testing.T) {
	_, err := ParseAndFilter(context.Background(), testGenericDef(), strings.NewReader("a\n\"x\n"))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("err = %v, want *ParseError", err)
	}
}

func TestSpecFor(t *testing.T) {
	user := NewSortSpec(SortKey{"price", Descending})

	if got := SpecFor(testGenericDef(), user); !got.Equal(user) {
		t.Errorf("generic spec = %v, want user spec", got)
	}
	cards := testCardsDef()
	if got := SpecFor(cards, user); !got.Equal(cards.FixedSpec) {
		t.Errorf("cards spec = %v, want fixed order", got)
	}
}

func TestSortFor_CardsFixedOrder(t *testing.T) {
	ds := NormalizeCards(NewDataset([]string{"Set", "Rarity", "Product Name"}, []Record{
		{"Set": StringValue("MRD"), "Rarity": StringValue("Common"), "Product Name": StringValue("b")},
		{"Set": StringValue("LOB"), "Rarity": StringValue("Rare"), "Product Name": StringValue("a")},
		{"Set": StringValue("LOB"), "Rarity": StringValue("Common"), "Product Name": StringValue("c")},
	}))

	out, err := SortFor(testCardsDef(), ds, NewSortSpec(SortKey{CardProductName, Descending}), language.English)
	if err != nil {
		t.Fatalf("SortFor: %v", err)
	}

	want := []string{"c", "a", "b"}
	for i, rec := range out.Records {
		if got := rec.Get(CardProductName).Text(); got != want[i] {
			t.Errorf("row %d = %q, want %q", i, got, want[i])
		}
	}
}
