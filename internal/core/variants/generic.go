package variants

import "github.com/JonMunkholm/cardsort/internal/core"

// GenericKey identifies the general-purpose spreadsheet variant.
const GenericKey = "generic"

// Generic sorts any CSV by user-chosen keys. Cells are typed on read and
// strings are collated for the configured locale.
func Generic() core.VariantDefinition {
	return core.VariantDefinition{
		Info: core.VariantInfo{
			Key:          GenericKey,
			Label:        "Any spreadsheet",
			Description:  "Sort any CSV by up to the configured number of columns.",
			ExportName:   "sorted-data.csv",
			UserSortable: true,
		},
		Parse: core.ParseOptions{InferTypes: true, KeepBlankLines: true},
		Filter: core.NoiseFilter{
			Substrings: []string{core.PullSheetMarker},
		},
		Collation: core.CollateLocale,
	}
}
