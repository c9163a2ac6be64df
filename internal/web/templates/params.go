// Package templates renders the HTML pages of the web UI. The .templ files
// are compiled with `templ generate`; do not edit the *_templ.go output.
package templates

import (
	"fmt"

	"github.com/JonMunkholm/cardsort/internal/core"
)

// PageParams holds everything the main page shows.
type PageParams struct {
	Variants []core.VariantInfo
	Selected string // variant preselected in the upload form
	View     core.SessionView
	Banner   string
	MaxKeys  int

	// FixedOrder describes the sort order of variants the user cannot sort.
	FixedOrder string
}

// summary is the one-line description of the loaded file.
func summary(v core.SessionView) string {
	s := fmt.Sprintf("%s: %d rows kept, %d noise rows removed", v.FileName, len(v.Rows), v.Filtered)
	if v.Sorted && !v.Spec.IsEmpty() {
		s += ", sorted by " + v.Spec.String()
	}
	return s
}
