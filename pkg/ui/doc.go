/*
Package ui defines the declarative description a render consumes.

A description is a tree of Node values: host elements (a tag plus props),
text leaves, function components and fragments. Descriptions are immutable
values; the reconciler turns them into host instances.

	doc := ui.Fragment(
		ui.H("h1", nil, ui.Text("Title")),
		ui.H("p", nil, ui.Text("Hello")),
	)

Descriptions built only from host elements, text and fragments can be decoded
from and encoded to plain maps (see Decode and Encode), which is how the file,
HTTP and MCP adapters exchange them.
*/
package ui
