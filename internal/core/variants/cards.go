package variants

import "github.com/JonMunkholm/cardsort/internal/core"

// CardsKey identifies the trading-card inventory variant.
const CardsKey = "cards"

// pullSheetShort catches footer rows that abbreviate the vendor marker.
const pullSheetShort = "pull sheet"

// CardOrder is the fixed sort applied to card inventories.
var CardOrder = core.NewSortSpec(
	core.SortKey{Column: core.CardSet, Dir: core.Ascending},
	core.SortKey{Column: core.CardRarity, Dir: core.Ascending},
	core.SortKey{Column: core.CardCondition, Dir: core.Ascending},
	core.SortKey{Column: core.CardProductName, Dir: core.Ascending},
)

// Cards cleans a vendor inventory export into the card schema and sorts it
// by set, rarity, condition and product name.
func Cards() core.VariantDefinition {
	return core.VariantDefinition{
		Info: core.VariantInfo{
			Key:         CardsKey,
			Label:       "Trading card inventory",
			Description: "Drops pull-sheet footers, maps vendor columns to the card schema and sorts by set, rarity, condition, product name.",
			ExportName:  "sorted_cards.csv",
		},
		Parse: core.ParseOptions{Trim: true},
		Filter: core.NoiseFilter{
			Substrings:      []string{core.PullSheetMarker, pullSheetShort},
			CaseInsensitive: true,
		},
		Normalize: core.NormalizeCards,
		FixedSpec: CardOrder,
		Collation: core.CollatePlain,
	}
}
