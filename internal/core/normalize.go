package core

import "strings"

// Card schema columns, in export order.
const (
	CardNumberShort = "numbershort"
	CardNumber      = "number"
	CardProductName = "product name"
	CardCondition   = "condition"
	CardQty         = "qty"
	CardRarity      = "rarity"
	CardSet         = "set"
	CardNotes       = "notes"
)

// CardColumns is the target schema produced by NormalizeCards.
var CardColumns = []string{
	CardNumberShort,
	CardNumber,
	CardProductName,
	CardCondition,
	CardQty,
	CardRarity,
	CardSet,
	CardNotes,
}

// Vendor column names read from inventory exports.
const (
	vendorNumber      = "Number"
	vendorQuantity    = "Quantity"
	vendorProductName = "Product Name"
	vendorCondition   = "Condition"
	vendorRarity      = "Rarity"
	vendorSet         = "Set"
)

// defaultQty is used when a row has no quantity.
const defaultQty = "1"

// NormalizeCard maps one vendor record onto the card schema.
// It never fails; absent columns fall back to defaults.
func NormalizeCard(raw Record) Record {
	number := raw.Get(vendorNumber)

	short := ""
	if s, ok := number.Str(); ok {
		if _, after, found := strings.Cut(s, "-"); found {
			short = after
		}
	}

	qty := defaultQty
	if s, ok := raw.Get(vendorQuantity).Str(); ok && s != "" {
		qty = s
	}

	return Record{
		CardNumberShort: StringValue(short),
		CardNumber:      number,
		CardProductName: textOrEmpty(raw.Get(vendorProductName)),
		CardCondition:   textOrEmpty(raw.Get(vendorCondition)),
		CardQty:         StringValue(qty),
		CardRarity:      textOrEmpty(raw.Get(vendorRarity)),
		CardSet:         textOrEmpty(raw.Get(vendorSet)),
		CardNotes:       StringValue(""),
	}
}

// NormalizeCards maps every record of ds onto the card schema.
func NormalizeCards(ds Dataset) Dataset {
	out := make([]Record, len(ds.Records))
	for i, rec := range ds.Records {
		out[i] = NormalizeCard(rec)
	}
	return Dataset{Columns: append([]string(nil), CardColumns...), Records: out}
}

func textOrEmpty(v Value) Value {
	if v.IsMissing() {
		return StringValue("")
	}
	return StringValue(v.Text())
}
