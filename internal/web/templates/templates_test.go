package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/cardsort/internal/core"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestPage_SortableView(t *testing.T) {
	view := core.SessionView{
		Variant:  core.VariantInfo{Key: "generic", UserSortable: true},
		FileName: "prices.csv",
		Columns:  []string{"name", "price"},
		Rows:     [][]string{{"<b>", "10"}},
		Spec:     core.NewSortSpec(core.SortKey{Column: "price", Dir: core.Descending}),
		Sorted:   true,
		Filtered: 1,
	}

	page := renderString(t, Page(PageParams{
		Variants: []core.VariantInfo{{Key: "generic", Label: "Any spreadsheet"}},
		Selected: "generic",
		View:     view,
		MaxKeys:  2,
	}))

	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, `<option value="generic" selected>Any spreadsheet</option>`)
	assert.Contains(t, page, "prices.csv: 1 rows kept, 1 noise rows removed, sorted by price desc")
	assert.Contains(t, page, `<select name="column0">`)
	assert.Contains(t, page, `<option value="price" selected>price</option>`)
	assert.Contains(t, page, `<option value="desc" selected>Descending</option>`)
	assert.Contains(t, page, `<select name="column1">`)
	assert.NotContains(t, page, `name="column2"`)
	assert.Contains(t, page, "<td>&lt;b&gt;</td>")
}

func TestPage_NoData(t *testing.T) {
	page := renderString(t, Page(PageParams{Banner: `bad "quote"`}))

	assert.Contains(t, page, `<div class="banner" role="alert">bad &#34;quote&#34;</div>`)
	assert.NotContains(t, page, "<table>")
	assert.NotContains(t, page, `action="/sort"`)
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("No file was selected", "Choose a CSV file to upload", "FILE004"))

	assert.Equal(t,
		`<div class="banner" role="alert"><strong>No file was selected</strong><span>Choose a CSV file to upload</span><small>(FILE004)</small></div>`,
		out)

	bare := renderString(t, ErrorAlert("Oops", "", ""))
	assert.NotContains(t, bare, "<span>")
	assert.NotContains(t, bare, "<small>")
}
