package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/mdrender/pkg/domain"
)

// MaxLabel bounds the length of text node labels.
const MaxLabel = 24

// GenerateMermaid produces a Mermaid flowchart of a committed document tree.
// It applies semantic styling:
// - Container: ((Circle))
// - Text: [/Parallelogram/]
// - Inline element: (Rounded)
// - Unknown tag (serialized as passthrough): [[Subroutine]], class "unknown"
// - Default: [Rectangle]
// Node IDs are assigned in depth-first order so the output is deterministic.
func GenerateMermaid(root domain.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[domain.Node]string)
	var unknown []string

	domain.Walk(root, func(n domain.Node, depth int) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		sb.WriteString(fmt.Sprintf("    %s%s\n", id, shape(n)))
		if el, ok := n.(*domain.Element); ok && el.Kind() == domain.KindUnknown {
			unknown = append(unknown, id)
		}
		if depth > 0 {
			if parentID, ok := ids[domain.Node(n.Parent())]; ok {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, id))
			}
		}
		return true
	})

	if len(unknown) > 0 {
		sb.WriteString("\n    %% Passthrough tags\n")
		sb.WriteString("    classDef unknown fill:#fff3e0,stroke:#e65100,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s unknown;\n", strings.Join(unknown, ",")))
	}

	return sb.String()
}

func shape(n domain.Node) string {
	switch v := n.(type) {
	case *domain.Text:
		return fmt.Sprintf("[/\"%s\"/]", label(v.Text))
	case *domain.Element:
		tag := label(v.Tag)
		switch {
		case v.Kind() == domain.KindRoot:
			return fmt.Sprintf("((\"%s\"))", tag)
		case v.Kind() == domain.KindUnknown:
			return fmt.Sprintf("[[\"%s\"]]", tag)
		case inline(v.Kind()):
			return fmt.Sprintf("(\"%s\")", tag)
		}
		return fmt.Sprintf("[\"%s\"]", tag)
	}
	return "[\"?\"]"
}

func inline(k domain.TagKind) bool {
	switch k {
	case domain.KindStrong, domain.KindEmphasis, domain.KindInlineCode,
		domain.KindLink, domain.KindImage, domain.KindLineBreak:
		return true
	}
	return false
}

// label escapes double quotes and newlines for Mermaid and truncates long text.
func label(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > MaxLabel {
		s = string(r[:MaxLabel-1]) + "…"
	}
	return s
}
