/*
Package dsl provides a Go DSL for programmatically constructing markdown
document descriptions.

It lets developers define documents with a fluent builder instead of writing
ui.H trees by hand or keeping them in YAML or JSON files. This is useful for
generated reports, unit tests and anything that benefits from IDE
autocompletion.

Example usage:

	package main

	import (
		"github.com/aretw0/mdrender/pkg/dsl"
	)

	func main() {
		docs := dsl.New()

		docs.Add("readme").
			Heading(1, "My Project").
			Paragraph("Built with ", dsl.Bold("mdrender"), ".").
			List("fast", "small").
			Code("go", `fmt.Println("hi")`)

		// The resulting loader can be used as a ports.DescriptionLoader
		loader, err := docs.Build()
		// ...
	}

Inline content is given as a mix of strings and ui.Node values; strings
become text leaves.
*/
package dsl
