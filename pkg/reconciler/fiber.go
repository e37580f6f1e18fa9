package reconciler

import (
	"reflect"
	"strconv"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ui"
)

// fiber is the committed record of one description node.
// Fibers are never mutated after a commit; each render builds new ones.
type fiber[N comparable] struct {
	kind  ui.Kind
	typ   string
	fn    uintptr
	key   string
	props domain.Props
	text  string

	// textContent is set when the host renders the element's text from props.
	textContent bool

	inst    N
	hasInst bool

	children []*fiber[N]
	// placed is the order of host instances attached below a host fiber.
	placed []N
}

// slotKey identifies a child among its siblings.
func slotKey(n ui.Node, index int) string {
	if n.Key != "" {
		return "k:" + n.Key
	}
	return "i:" + strconv.Itoa(index)
}

func componentID(fn ui.Component) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// sameType reports whether f can be updated in place to render n.
func (f *fiber[N]) sameType(n ui.Node) bool {
	if f.kind != n.Kind {
		return false
	}
	switch n.Kind {
	case ui.KindHost:
		return f.typ == n.Type
	case ui.KindComponent:
		return f.fn == componentID(n.Component)
	}
	return true
}

// hostInstances returns the topmost host instances in fibers, in order.
func hostInstances[N comparable](fibers []*fiber[N]) []N {
	var out []N
	for _, f := range fibers {
		out = appendHostInstances(out, f)
	}
	return out
}

func appendHostInstances[N comparable](out []N, f *fiber[N]) []N {
	if f.hasInst {
		return append(out, f.inst)
	}
	for _, c := range f.children {
		out = appendHostInstances(out, c)
	}
	return out
}

// allInstances returns every host instance in the subtree rooted at f.
func allInstances[N comparable](out []N, f *fiber[N]) []N {
	if f.hasInst {
		out = append(out, f.inst)
	}
	for _, c := range f.children {
		out = allInstances(out, c)
	}
	return out
}
