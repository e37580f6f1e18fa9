/*
Package mdrender renders declarative, component-based UI descriptions to Markdown.

It works like a custom renderer for a tree-reconciliation engine: the engine in
pkg/reconciler decides which instances to create, move, update and delete; the
host adapter in pkg/adapters/doctree applies those decisions to a small mutable
document tree; once the engine reports a finished commit, the tree is handed
to the serializer in pkg/markdown.

# Concept

A render is one-shot and fully isolated. Every call creates its own empty
container, host adapter and reconciler root, submits the description, forces a
synchronous flush, and exposes the outcome through a Result that resolves
exactly once. Nothing is shared between renders except configuration, an
optional cache and the lifecycle hooks, so a single Renderer can serve many
goroutines.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/mdrender"
		"github.com/aretw0/mdrender/pkg/ui"
	)

	func main() {
		doc := ui.Fragment(
			ui.H("h1", nil, ui.Text("Title")),
			ui.H("p", nil, ui.Text("Hello")),
		)

		md, err := mdrender.RenderToMarkdownString(context.Background(), doc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(md) // "# Title\n\nHello\n\n"
	}

Descriptions can also be built with pkg/dsl, decoded from YAML or JSON with
ui.Decode, loaded from a Loam repository, or imported from HTML.

# Failures

If the description cannot even be submitted (for example an element without a
type), the Result resolves to an empty string and the cause is logged at Error
level. Use WithStrictSubmit to receive the error instead. A failure while
serializing the committed tree always rejects the Result with an error wrapped
as "error in commit callback".
*/
package mdrender
