// Package variants registers the pipeline variants with the core registry.
// Import it for side effects:
//
//	import _ "github.com/JonMunkholm/cardsort/internal/core/variants"
package variants

import "github.com/JonMunkholm/cardsort/internal/core"

func init() {
	core.Register(Generic())
	core.Register(Cards())
}
