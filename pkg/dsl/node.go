package dsl

import (
	"fmt"

	"github.com/aretw0/mdrender/pkg/ui"
)

// DocBuilder provides a fluent API for appending blocks to a document.
// The first invalid call is remembered and reported by Build.
type DocBuilder struct {
	id     string
	blocks []ui.Node
	err    error
}

// Doc starts a standalone document that is not part of a Builder.
func Doc() *DocBuilder {
	return &DocBuilder{}
}

func (d *DocBuilder) fail(format string, args ...any) *DocBuilder {
	if d.err == nil {
		d.err = fmt.Errorf(format, args...)
		if d.id != "" {
			d.err = fmt.Errorf("document %s: %w", d.id, d.err)
		}
	}
	return d
}

// Heading appends an h1-h6 heading.
func (d *DocBuilder) Heading(level int, content ...any) *DocBuilder {
	if level < 1 || level > 6 {
		return d.fail("heading level %d out of range 1-6", level)
	}
	return d.Node(ui.H(fmt.Sprintf("h%d", level), nil, Inline(content...)...))
}

// Paragraph appends a paragraph.
func (d *DocBuilder) Paragraph(content ...any) *DocBuilder {
	return d.Node(ui.H("p", nil, Inline(content...)...))
}

// List appends a bullet list with one item per argument.
func (d *DocBuilder) List(items ...any) *DocBuilder {
	return d.Node(ui.H("ul", nil, listItems(items)...))
}

// OrderedList appends a numbered list with one item per argument.
func (d *DocBuilder) OrderedList(items ...any) *DocBuilder {
	return d.Node(ui.H("ol", nil, listItems(items)...))
}

// Code appends a fenced code block. lang may be empty.
func (d *DocBuilder) Code(lang, code string) *DocBuilder {
	var props ui.Props
	if lang != "" {
		props = ui.Props{"lang": lang}
	}
	return d.Node(ui.H("pre", props, ui.Text(code)))
}

// Quote appends a blockquote.
func (d *DocBuilder) Quote(content ...any) *DocBuilder {
	return d.Node(ui.H("blockquote", nil, Inline(content...)...))
}

// Image appends an image.
func (d *DocBuilder) Image(alt, src string) *DocBuilder {
	return d.Node(ui.H("img", ui.Props{"alt": alt, "src": src}))
}

// Rule appends a horizontal rule.
func (d *DocBuilder) Rule() *DocBuilder {
	return d.Node(ui.H("hr", nil))
}

// Table appends a table with a header row. Every row must have as many
// cells as the header.
func (d *DocBuilder) Table(header []string, rows ...[]string) *DocBuilder {
	if len(header) == 0 {
		return d.fail("table without header")
	}
	head := make([]ui.Node, 0, len(header))
	for _, h := range header {
		head = append(head, ui.H("th", nil, ui.Text(h)))
	}
	body := make([]ui.Node, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return d.fail("table row %d has %d cells, header has %d", i, len(row), len(header))
		}
		cells := make([]ui.Node, 0, len(row))
		for _, c := range row {
			cells = append(cells, ui.H("td", nil, ui.Text(c)))
		}
		body = append(body, ui.H("tr", nil, cells...))
	}
	return d.Node(ui.H("table", nil,
		ui.H("thead", nil, ui.H("tr", nil, head...)),
		ui.H("tbody", nil, body...),
	))
}

// Node appends an arbitrary description.
func (d *DocBuilder) Node(n ui.Node) *DocBuilder {
	d.blocks = append(d.blocks, n)
	return d
}

// Build returns the document as a fragment of its blocks.
func (d *DocBuilder) Build() (ui.Node, error) {
	if d.err != nil {
		return ui.Empty, d.err
	}
	blocks := make([]ui.Node, len(d.blocks))
	copy(blocks, d.blocks)
	return ui.Fragment(blocks...), nil
}

// Inline converts strings to text leaves and keeps ui.Node values as they
// are. Other values are formatted with fmt.
func Inline(parts ...any) []ui.Node {
	out := make([]ui.Node, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case ui.Node:
			out = append(out, v)
		case string:
			out = append(out, ui.Text(v))
		default:
			out = append(out, ui.Textf("%v", v))
		}
	}
	return out
}

func listItems(items []any) []ui.Node {
	out := make([]ui.Node, 0, len(items))
	for _, it := range items {
		out = append(out, ui.H("li", nil, Inline(it)...))
	}
	return out
}

// Bold wraps content in strong emphasis.
func Bold(content ...any) ui.Node { return ui.H("strong", nil, Inline(content...)...) }

// Italic wraps content in emphasis.
func Italic(content ...any) ui.Node { return ui.H("em", nil, Inline(content...)...) }

// InlineCode renders s as a code span.
func InlineCode(s string) ui.Node { return ui.H("code", nil, ui.Text(s)) }

// Link renders content as a link to href.
func Link(href string, content ...any) ui.Node {
	return ui.H("a", ui.Props{"href": href}, Inline(content...)...)
}

// Break is a hard line break.
func Break() ui.Node { return ui.H("br", nil) }
