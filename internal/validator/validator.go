package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/markdown"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding, located by a path like $.children[1].
type Issue struct {
	Path     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Report collects the findings of Validate.
type Report struct {
	Issues []Issue
}

// Errors returns only the error-level issues.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Err summarizes the error-level issues, or returns nil.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Path + ": " + e.Message
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

// stringProps must hold scalars; the serializer coerces them to strings.
var stringProps = map[domain.TagKind][]string{
	domain.KindLink:      {"href"},
	domain.KindImage:     {"alt", "src"},
	domain.KindCodeBlock: {"lang", "language"},
}

// Validate checks a description for constructs that fail to render or that
// render differently than they read. Function components are opaque: their
// output is not inspected.
func Validate(desc ui.Node) Report {
	v := &walker{}
	v.visit(desc, "$", nil, 0)
	return Report{Issues: v.issues}
}

type walker struct {
	issues []Issue
}

func (v *walker) add(path string, sev Severity, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// visit walks n. parent is the nearest enclosing host element, or nil.
func (v *walker) visit(n ui.Node, path string, parent *ui.Node, depth int) {
	if depth > markdown.MaxDepth {
		v.add(path, SeverityError, "nesting exceeds %d levels", markdown.MaxDepth)
		return
	}

	switch n.Kind {
	case ui.KindHost:
		v.host(n, path, parent)
		v.children(n.Children, path, &n, depth)
	case ui.KindFragment:
		v.children(n.Children, path, parent, depth)
	case ui.KindComponent:
		if n.Component == nil {
			v.add(path, SeverityError, "component %q has no function", n.Name)
		}
	}
}

func (v *walker) children(children []ui.Node, path string, parent *ui.Node, depth int) {
	keys := make(map[string]bool)
	for i, c := range children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if c.Key != "" {
			if keys[c.Key] {
				v.add(childPath, SeverityWarning, "duplicate key %q among siblings", c.Key)
			}
			keys[c.Key] = true
		}
		v.visit(c, childPath, parent, depth+1)
	}
}

func (v *walker) host(n ui.Node, path string, parent *ui.Node) {
	if n.Type == "" {
		v.add(path, SeverityError, "element without a tag")
		return
	}

	kind := domain.KindOf(n.Type)
	if kind == domain.KindUnknown && !domain.TextBearing(n.Type) {
		v.add(path, SeverityWarning, "unknown tag <%s> renders its children only", n.Type)
	}
	if kind == domain.KindRoot {
		v.add(path, SeverityWarning, "<%s> is reserved for the container", n.Type)
	}

	for _, key := range stringProps[kind] {
		switch val := n.Props[key].(type) {
		case nil, string, bool, int, int64, float64, fmt.Stringer:
		default:
			v.add(path, SeverityError, "<%s> prop %q must be a scalar, got %T", n.Type, key, val)
		}
	}

	switch kind {
	case domain.KindLink:
		if _, ok := n.Props["href"]; !ok {
			v.add(path, SeverityWarning, "<a> without href links to #")
		}
	case domain.KindImage:
		if _, ok := n.Props["src"]; !ok {
			v.add(path, SeverityWarning, "<img> without src")
		}
		if len(n.Children) > 0 {
			v.add(path, SeverityWarning, "<img> children are not rendered")
		}
	case domain.KindListItem:
		if !parentIs(parent, domain.KindUnorderedList, domain.KindOrderedList) {
			v.add(path, SeverityWarning, "<li> outside <ul> or <ol> renders as a bullet")
		}
	case domain.KindTableRow:
		if !parentIs(parent, domain.KindTable, domain.KindTableHead, domain.KindTableBody) {
			v.add(path, SeverityWarning, "<tr> outside a table")
		}
	case domain.KindTableHeaderCell, domain.KindTableDataCell:
		if !parentIs(parent, domain.KindTableRow) {
			v.add(path, SeverityWarning, "<%s> outside <tr>", n.Type)
		}
	case domain.KindLineBreak, domain.KindHorizontalRule:
		if len(n.Children) > 0 {
			v.add(path, SeverityWarning, "<%s> children are not rendered", n.Type)
		}
	}
}

func parentIs(parent *ui.Node, kinds ...domain.TagKind) bool {
	if parent == nil {
		return false
	}
	k := domain.KindOf(parent.Type)
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
