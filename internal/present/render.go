package present

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// bodyPreview is the widest body cell in text tables.
const bodyPreview = 48

// Renderer writes groups and records in one format.
type Renderer struct {
	Format Format
	Styles Styles
}

// NewRenderer creates a renderer for w, resolving FormatAuto against it.
func NewRenderer(w io.Writer, f Format) *Renderer {
	f = Resolve(f, w)
	styles := PlainStyles()
	if f == FormatText && Resolve(FormatAuto, w) == FormatText {
		styles = DefaultStyles()
	}
	return &Renderer{Format: f, Styles: styles}
}

// Render writes every group.
func (r *Renderer) Render(w io.Writer, groups []Group) error {
	switch r.Format {
	case FormatJSON:
		return encodeJSON(w, groups)
	case FormatYAML:
		return encodeYAML(w, groups)
	case FormatCSV:
		return r.renderCSV(w, groups)
	}

	for i, g := range groups {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		if err := r.renderGroup(w, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderGroup(w io.Writer, g Group) error {
	tbl := g.Table()
	switch r.Format {
	case FormatMarkdown:
		_, _ = fmt.Fprintf(w, "## %s\n\n", g.Title)
		if len(tbl.Rows) == 0 {
			_, _ = fmt.Fprintln(w, "(0 rows)")
			break
		}
		gridTable(w, tbl.Grid()).RenderMarkdown()
		_, _ = fmt.Fprintln(w)
	case FormatHTML:
		_, _ = fmt.Fprintf(w, "<h2>%s</h2>\n", g.Title)
		t := gridTable(w, tbl.Grid())
		t.Style().HTML.CSSClass = "callables"
		t.RenderHTML()
	default:
		_, _ = fmt.Fprintln(w, r.Styles.Heading.Render(g.Title))
		if len(tbl.Rows) == 0 {
			_, _ = fmt.Fprintln(w, r.Styles.Muted.Render("(0 rows)"))
			break
		}
		t := newTableWriter(w, tbl.Columns)
		t.SetStyle(table.StyleLight)
		for i, row := range tbl.Rows {
			row = slices.Clone(row)
			row[len(row)-1] = Preview(tbl.Detail(i), bodyPreview)
			t.AppendRow(cells(row))
		}
		t.Render()
		_, _ = fmt.Fprintln(w, r.Styles.Muted.Render(fmt.Sprintf("(%d rows)", len(tbl.Rows))))
	}

	r.renderFailures(w, g.Failures)
	return nil
}

func gridTable(w io.Writer, tbl Table) table.Writer {
	t := newTableWriter(w, tbl.Columns)
	for _, row := range tbl.Rows {
		t.AppendRow(cells(row))
	}
	return t
}

func (r *Renderer) renderFailures(w io.Writer, failures []Failure) {
	if len(failures) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, r.Styles.Warning.Render(fmt.Sprintf("%d object(s) could not be described:", len(failures))))
	for _, f := range failures {
		_, _ = fmt.Fprintf(w, "  - %s: %s\n", f.Signature, f.Error)
	}
}

// renderCSV writes a single CSV document with a leading Category column.
func (r *Renderer) renderCSV(w io.Writer, groups []Group) error {
	t := newTableWriter(w, append([]string{"Category"}, ToTable(nil).Columns...))
	for _, g := range groups {
		for _, row := range g.Table().Rows {
			t.AppendRow(cells(append([]string{string(g.Category)}, row...)))
		}
	}
	t.RenderCSV()
	return nil
}

// RenderDetail writes the full metadata and body of each record.
func (r *Renderer) RenderDetail(w io.Writer, records []core.Record) error {
	switch r.Format {
	case FormatJSON:
		return encodeJSON(w, records)
	case FormatYAML:
		return encodeYAML(w, records)
	}

	for i, rec := range records {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		switch r.Format {
		case FormatMarkdown, FormatHTML, FormatCSV:
			_, _ = fmt.Fprintf(w, "## %s\n\n", rec.Signature)
			_, _ = fmt.Fprintf(w, "- Handler: %s\n- Returns: %s\n- Imports: %s\n- Packages: %s\n- Created: %s\n\n",
				rec.Handler, rec.Returns, rec.Imports, rec.Packages, rec.DateCreated)
			_, _ = fmt.Fprintf(w, "```\n%s\n```\n", rec.Body)
		default:
			_, _ = fmt.Fprintln(w, r.Styles.Heading.Render(rec.Signature))
			for _, kv := range [][2]string{
				{"Handler", rec.Handler},
				{"Returns", rec.Returns},
				{"Imports", rec.Imports},
				{"Packages", rec.Packages},
				{"Created", rec.DateCreated},
			} {
				_, _ = fmt.Fprintf(w, "%s %s\n", r.Styles.Muted.Render(kv[0]+":"), kv[1])
			}
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, rec.Body)
		}
	}
	return nil
}

// Preview returns the first line of s, cut to at most width runes.
// An ellipsis marks anything that was dropped.
func Preview(s string, width int) string {
	line, rest, multi := strings.Cut(s, "\n")
	runes := []rune(strings.TrimRight(line, "\r"))
	if len(runes) > width {
		return string(runes[:max(width-1, 0)]) + "…"
	}
	if multi && strings.TrimSpace(rest) != "" {
		return string(runes) + " …"
	}
	return string(runes)
}

func newTableWriter(w io.Writer, header []string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(cells(header))
	return t
}

func cells(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Property is one labelled value of a summary.
type Property struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// RenderProperties writes a titled key/value summary.
func (r *Renderer) RenderProperties(w io.Writer, title string, props []Property) error {
	switch r.Format {
	case FormatJSON, FormatYAML:
		m := make(map[string]string, len(props))
		for _, p := range props {
			m[p.Key] = p.Value
		}
		if r.Format == FormatJSON {
			return encodeJSON(w, m)
		}
		return encodeYAML(w, m)
	case FormatMarkdown:
		_, _ = fmt.Fprintf(w, "## %s\n\n", title)
		for _, p := range props {
			_, _ = fmt.Fprintf(w, "- %s: %s\n", p.Key, p.Value)
		}
	default:
		_, _ = fmt.Fprintln(w, r.Styles.Heading.Render(title))
		for _, p := range props {
			_, _ = fmt.Fprintf(w, "  %s %s\n", r.Styles.Muted.Render(p.Key+":"), p.Value)
		}
	}
	return nil
}
