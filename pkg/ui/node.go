package ui

import (
	"fmt"

	"github.com/aretw0/mdrender/pkg/domain"
)

// Kind discriminates description nodes.
type Kind int

const (
	// KindEmpty renders nothing.
	KindEmpty Kind = iota
	KindHost
	KindText
	KindComponent
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindHost:
		return "host"
	case KindText:
		return "text"
	case KindComponent:
		return "component"
	case KindFragment:
		return "fragment"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Props is the attribute map carried by host elements and components.
type Props = domain.Props

// Component expands into another description.
type Component func(props Props, children []Node) Node

// Node is one entry of a description tree.
type Node struct {
	Kind      Kind
	Type      string
	Text      string
	Name      string
	Component Component
	Key       string
	Props     Props
	Children  []Node
}

// Empty is the description that renders nothing.
var Empty = Node{}

// H describes a host element.
func H(tag string, props Props, children ...Node) Node {
	return Node{Kind: KindHost, Type: tag, Props: props, Children: children}
}

// Text describes a text leaf.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Textf describes a formatted text leaf.
func Textf(format string, args ...any) Node {
	return Text(fmt.Sprintf(format, args...))
}

// C describes a function component. Name is used in logs and errors.
func C(name string, fn Component, props Props, children ...Node) Node {
	return Node{Kind: KindComponent, Name: name, Component: fn, Props: props, Children: children}
}

// Fragment groups children without adding a host element.
func Fragment(children ...Node) Node {
	return Node{Kind: KindFragment, Children: children}
}

// WithKey returns a copy of n carrying a reconciliation key.
func (n Node) WithKey(key string) Node {
	n.Key = key
	return n
}

// IsEmpty reports whether n renders nothing.
func (n Node) IsEmpty() bool {
	return n.Kind == KindEmpty
}

// Label is a short human-readable identifier used in logs.
func (n Node) Label() string {
	switch n.Kind {
	case KindHost:
		return "<" + n.Type + ">"
	case KindText:
		return fmt.Sprintf("%q", n.Text)
	case KindComponent:
		if n.Name != "" {
			return n.Name
		}
		return "component"
	}
	return n.Kind.String()
}
