// Package markdown serializes a document tree into Markdown text.
//
// Serialization is a pure function of the tree: it never mutates nodes, so
// calling Serialize twice on the same tree yields the same string. Text is
// emitted verbatim; Markdown-significant characters are not escaped.
package markdown
