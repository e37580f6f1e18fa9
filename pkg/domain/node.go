package domain

// TagRoot is the tag carried by a container element.
const TagRoot = "root"

// Node is either an *Element or a *Text.
// The set is closed: only this package can implement it.
type Node interface {
	// Parent returns the element this node was last attached to, or nil.
	// The reference is read-only; membership in Children is what owns a node.
	Parent() *Element
	setParent(p *Element)
	isNode()
}

// Element represents one document element.
type Element struct {
	Tag      string
	Props    Props
	Children []Node

	parent *Element
}

// NewElement allocates a detached element with no children.
func NewElement(tag string, props Props) *Element {
	if props == nil {
		props = Props{}
	}
	return &Element{
		Tag:   tag,
		Props: props,
	}
}

// NewContainer returns an empty root element.
func NewContainer() *Element {
	return NewElement(TagRoot, nil)
}

func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) setParent(p *Element) { e.parent = p }
func (e *Element) isNode()              {}

// IsContainer reports whether e is a root container.
func (e *Element) IsContainer() bool {
	return e.Tag == TagRoot && e.parent == nil
}

// Kind classifies the element's tag.
func (e *Element) Kind() TagKind {
	return KindOf(e.Tag)
}

// SetProps replaces the props wholesale.
func (e *Element) SetProps(props Props) {
	if props == nil {
		props = Props{}
	}
	e.Props = props
}

// IndexOf returns the position of child in e.Children by identity, or -1.
func (e *Element) IndexOf(child Node) int {
	for i, c := range e.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild adds child at the end of e.Children and sets its parent.
// A child that is still attached somewhere is moved, never duplicated.
func (e *Element) AppendChild(child Node) error {
	if err := e.checkCycle(child); err != nil {
		return err
	}
	detach(child)
	e.Children = append(e.Children, child)
	child.setParent(e)
	return nil
}

// InsertBefore places child immediately before `before`.
// If `before` is not a child of e the call behaves like AppendChild.
func (e *Element) InsertBefore(child, before Node) error {
	if err := e.checkCycle(child); err != nil {
		return err
	}
	detach(child)
	idx := -1
	if before != nil {
		idx = e.IndexOf(before)
	}
	if idx == -1 {
		e.Children = append(e.Children, child)
	} else {
		e.Children = append(e.Children, nil)
		copy(e.Children[idx+1:], e.Children[idx:])
		e.Children[idx] = child
	}
	child.setParent(e)
	return nil
}

// RemoveChild removes the first identity match from e.Children, keeping the
// order of the remaining siblings. The removed node keeps its parent
// reference.
func (e *Element) RemoveChild(child Node) bool {
	idx := e.IndexOf(child)
	if idx == -1 {
		return false
	}
	e.Children = append(e.Children[:idx], e.Children[idx+1:]...)
	return true
}

// Clear drops every child.
func (e *Element) Clear() {
	e.Children = nil
}

// checkCycle rejects attaching e or one of its live ancestors below e.
func (e *Element) checkCycle(child Node) error {
	el, ok := child.(*Element)
	if !ok {
		return nil
	}
	for cur := e; cur != nil; cur = attachedParent(cur) {
		if cur == el {
			return ErrCycle
		}
	}
	return nil
}

// Text represents literal text.
type Text struct {
	Text string

	parent *Element
}

// NewText allocates a detached text node.
func NewText(text string) *Text {
	return &Text{Text: text}
}

func (t *Text) Parent() *Element     { return t.parent }
func (t *Text) setParent(p *Element) { t.parent = p }
func (t *Text) isNode()              {}

// SetText replaces the text in place.
func (t *Text) SetText(text string) {
	t.Text = text
}

// attachedParent returns n's parent only while the parent still lists n.
// Removed nodes keep a stale parent reference, which must not be followed.
func attachedParent(n Node) *Element {
	p := n.Parent()
	if p == nil || p.IndexOf(n) == -1 {
		return nil
	}
	return p
}

func detach(n Node) {
	if p := attachedParent(n); p != nil {
		p.RemoveChild(n)
	}
}

// Walk visits n and its descendants depth-first in child order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if el, ok := n.(*Element); ok {
		for _, c := range el.Children {
			walk(c, depth+1, fn)
		}
	}
}
