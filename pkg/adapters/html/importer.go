// Package html imports HTML documents as descriptions.
//
// Noise elements are removed first, then the best content container
// (<main>, <article>, or <body>) is converted node by node. Tags are kept as
// they are, so anything the serializer does not know renders as its children.
package html

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/aretw0/mdrender/pkg/ui"
)

// noiseSelectors are removed before conversion.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header",
	"iframe", "video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// inline lists the elements whose whitespace-only text is significant.
var inline = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "a": true, "strong": true, "b": true, "em": true, "i": true,
	"code": true, "span": true, "th": true, "td": true,
}

var spaces = regexp.MustCompile(`\s+`)

// Parse reads an HTML document and returns its main content as a description.
func Parse(r io.Reader) (ui.Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ui.Empty, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil || len(content.Nodes) == 0 {
		return ui.Empty, fmt.Errorf("no content container found in HTML")
	}

	return ui.Fragment(convertChildren(content.Nodes[0])...), nil
}

// ParseString is Parse over a string.
func ParseString(s string) (ui.Node, error) {
	return Parse(strings.NewReader(s))
}

func convertChildren(parent *html.Node) []ui.Node {
	var out []ui.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if n, ok := convert(c); ok {
			out = append(out, n)
		}
	}
	return trimEdges(out)
}

func convert(n *html.Node) (ui.Node, bool) {
	switch n.Type {
	case html.TextNode:
		text := spaces.ReplaceAllString(n.Data, " ")
		if strings.TrimSpace(text) == "" && (n.Parent == nil || !inline[n.Parent.Data]) {
			return ui.Empty, false
		}
		return ui.Text(text), true

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		props := attributes(n)
		if tag == "pre" {
			return preformatted(n, props), true
		}
		return ui.H(tag, props, convertChildren(n)...), true
	}
	return ui.Empty, false
}

// preformatted keeps the raw text and lifts a language-xxx class from an
// inner <code> into the lang prop.
func preformatted(n *html.Node, props ui.Props) ui.Node {
	sel := goquery.NewDocumentFromNode(n).Selection
	if code := sel.Find("code").First(); code.Length() > 0 {
		for _, class := range strings.Fields(code.AttrOr("class", "")) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				if props == nil {
					props = ui.Props{}
				}
				props["lang"] = lang
				break
			}
		}
	}
	text := strings.TrimSuffix(sel.Text(), "\n")
	return ui.H("pre", props, ui.Text(text))
}

func attributes(n *html.Node) ui.Props {
	if len(n.Attr) == 0 {
		return nil
	}
	props := make(ui.Props, len(n.Attr))
	for _, a := range n.Attr {
		props[a.Key] = a.Val
	}
	return props
}

// trimEdges drops leading whitespace of the first text child and trailing
// whitespace of the last one.
func trimEdges(nodes []ui.Node) []ui.Node {
	if len(nodes) == 0 {
		return nil
	}
	if first := &nodes[0]; first.Kind == ui.KindText {
		first.Text = strings.TrimLeft(first.Text, " ")
	}
	if last := &nodes[len(nodes)-1]; last.Kind == ui.KindText {
		last.Text = strings.TrimRight(last.Text, " ")
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == ui.KindText && n.Text == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
