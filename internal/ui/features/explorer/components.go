package explorer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/resources"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// ContentID is the element patched by SSE updates.
const ContentID = "explorer-content"

// DatastarScript is the client runtime loaded by the page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

const (
	subtitle   = "All things you need to know about your Snowpark Python User-Defined Functions (UDFs, UDTFs) and Stored Procedures (SPs)"
	expandHint = "NOTE: To see the UDF, UDTF or SP code, expand the row by clicking on the UDF or SP name. Click a column header to sort."
)

// Page renders the full dashboard document.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&b, "<title>%s</title>", templ.EscapeString(data.Title))
		fmt.Fprintf(&b, `<link rel="stylesheet" href="%s">`, resources.StaticPath(resources.Stylesheet))
		fmt.Fprintf(&b, `<script type="module" src="%s"></script>`, DatastarScript)
		b.WriteString("</head>")

		fmt.Fprintf(&b, `<body data-signals="{tab: '%s', open: '', sort: '', desc: false}" data-init="@get('/updates')">`, data.Active)
		b.WriteString(`<header class="page-header">`)
		fmt.Fprintf(&b, "<h1>%s</h1>", templ.EscapeString(data.Title))
		fmt.Fprintf(&b, `<p class="subtitle">%s</p>`, templ.EscapeString(subtitle))
		fmt.Fprintf(&b, `<p class="target">%s.%s</p>`,
			templ.EscapeString(data.Content.Meta.Database), templ.EscapeString(data.Content.Meta.Schema))
		fmt.Fprintf(&b, `<p class="hint">%s</p>`, templ.EscapeString(expandHint))
		b.WriteString(`<button class="refresh" data-on:click="@post('/api/explorer/refresh')">Refresh</button>`)
		b.WriteString("</header>")

		b.WriteString(`<nav class="tabs" role="tablist">`)
		for _, tab := range Tabs() {
			fmt.Fprintf(&b,
				`<button role="tab" data-class:active="$tab == '%[1]s'" data-on:click="$tab = '%[1]s'; $open = ''; @post('/api/explorer/tab/%[1]s')">%[2]s</button>`,
				tab, templ.EscapeString(tab.Title()))
		}
		b.WriteString("</nav><main>")

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := Content(data.Content).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// Content renders the patchable content area: one panel per tab, or the
// failure panel when loading failed.
func Content(data ContentData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s">`, ContentID)
		if data.Err != nil {
			b.WriteString(errorPanel(data.Err))
		} else {
			for _, g := range data.Groups {
				writeGroup(&b, g, data.Sort)
			}
		}
		b.WriteString("</div>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// errorPanel returns the generic failure panel markup for err.
func errorPanel(err error) string {
	var b strings.Builder
	b.WriteString(`<div class="error-panel" role="alert">`)
	b.WriteString("<h2>Unable to load callables</h2>")
	fmt.Fprintf(&b, "<pre>%s</pre>", templ.EscapeString(err.Error()))
	b.WriteString("</div>")
	return b.String()
}

func writeGroup(b *strings.Builder, g present.Group, sort Sort) {
	tab := TabFor(g.Category)
	fmt.Fprintf(b, `<section class="panel" data-category="%s" data-show="$tab == '%s'">`, g.Category, tab)
	fmt.Fprintf(b, "<h2>%s</h2>", templ.EscapeString(g.Title))

	tbl := g.Table()
	grid := tbl.Grid()
	b.WriteString(`<table class="callables"><thead><tr>`)
	for _, c := range grid.Columns {
		writeHeader(b, c, sort)
	}
	b.WriteString("</tr></thead><tbody>")

	if len(grid.Rows) == 0 {
		fmt.Fprintf(b, `<tr class="empty"><td colspan="%d">No rows</td></tr>`, len(grid.Columns))
	}
	for i, row := range grid.Rows {
		id := rowID(g.Category, i)
		writeRow(b, id, row)
		writeDetail(b, id, g.Records[i].Returns, tbl.Detail(i), len(grid.Columns))
	}
	b.WriteString("</tbody></table>")

	if len(g.Failures) > 0 {
		b.WriteString(`<div class="failures" role="status"><h3>Could not describe</h3><ul>`)
		for _, f := range g.Failures {
			fmt.Fprintf(b, "<li><code>%s</code>: %s</li>", templ.EscapeString(f.Signature), templ.EscapeString(f.Error))
		}
		b.WriteString("</ul></div>")
	}
	b.WriteString("</section>")
}

// writeHeader renders a sortable column header. Clicking the sorted column
// again flips the direction; the server reorders both grids.
func writeHeader(b *strings.Builder, column string, sort Sort) {
	class, aria, mark := "sortable", "none", ""
	if sort.Column == column {
		class, aria, mark = "sortable sorted asc", "ascending", " ▲"
		if sort.Desc {
			class, aria, mark = "sortable sorted desc", "descending", " ▼"
		}
	}
	c := templ.EscapeString(column)
	fmt.Fprintf(b,
		`<th class="%s" aria-sort="%s" data-on:click="$desc = $sort == '%[3]s' && !$desc; $sort = '%[3]s'; $open = ''; @get('/api/explorer/content')">%[3]s%[4]s</th>`,
		class, aria, c, mark)
}

// writeRow renders the master row. Only one detail row is open at a time.
func writeRow(b *strings.Builder, id string, cells []string) {
	fmt.Fprintf(b, `<tr class="master" id="%[1]s" data-class:open="$open == '%[1]s'" data-on:click="$open = $open == '%[1]s' ? '' : '%[1]s'">`, id)
	for _, cell := range cells {
		fmt.Fprintf(b, "<td>%s</td>", templ.EscapeString(cell))
	}
	b.WriteString("</tr>")
}

func writeDetail(b *strings.Builder, id, returns, body string, span int) {
	fmt.Fprintf(b, `<tr class="detail" data-show="$open == '%s'" style="display: none"><td colspan="%d">`, id, span)
	fmt.Fprintf(b, `<p class="returns">Returns: <code>%s</code></p>`, templ.EscapeString(returns))
	fmt.Fprintf(b, `<textarea readonly class="body" style="height: 200px">%s</textarea>`, templ.EscapeString(body))
	b.WriteString("</td></tr>")
}

func rowID(cat core.Category, i int) string {
	return string(cat) + "-" + strconv.Itoa(i)
}
