package markdown

import (
	"fmt"
	"strings"

	"github.com/aretw0/mdrender/pkg/domain"
)

// MaxDepth bounds element nesting. Trees built through the domain API are
// acyclic, so hitting the limit means the tree was assembled by hand.
const MaxDepth = 1024

// Serialize renders n and its descendants as Markdown.
func Serialize(n domain.Node) (string, error) {
	return serialize(n, 0)
}

func serialize(n domain.Node, depth int) (string, error) {
	switch v := n.(type) {
	case *domain.Text:
		return v.Text, nil
	case *domain.Element:
		if depth > MaxDepth {
			return "", fmt.Errorf("<%s> at depth %d: %w", v.Tag, depth, domain.ErrTooDeep)
		}
		parts := make([]string, len(v.Children))
		for i, c := range v.Children {
			s, err := serialize(c, depth+1)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		out, err := rules[v.Kind()](v, parts)
		if err != nil {
			return "", fmt.Errorf("<%s>: %w", v.Tag, err)
		}
		return out, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported node %T", n)
	}
}

// rule formats one element given the serialized form of each child.
type rule func(el *domain.Element, parts []string) (string, error)

// rules is indexed by kind; TestRules_Complete asserts every slot is set.
var rules = [domain.NumKinds]rule{
	domain.KindUnknown:         passthrough,
	domain.KindRoot:            passthrough,
	domain.KindHeading1:        heading,
	domain.KindHeading2:        heading,
	domain.KindHeading3:        heading,
	domain.KindHeading4:        heading,
	domain.KindHeading5:        heading,
	domain.KindHeading6:        heading,
	domain.KindParagraph:       suffix("\n\n"),
	domain.KindStrong:          wrap("**"),
	domain.KindEmphasis:        wrap("*"),
	domain.KindInlineCode:      wrap("`"),
	domain.KindCodeBlock:       codeBlock,
	domain.KindLink:            link,
	domain.KindImage:           image,
	domain.KindUnorderedList:   suffix("\n"),
	domain.KindOrderedList:     suffix("\n"),
	domain.KindListItem:        listItem,
	domain.KindBlockquote:      blockquote,
	domain.KindLineBreak:       literal("\n"),
	domain.KindHorizontalRule:  literal("---\n\n"),
	domain.KindTable:           suffix("\n"),
	domain.KindTableHead:       passthrough,
	domain.KindTableBody:       passthrough,
	domain.KindTableRow:        tableRow,
	domain.KindTableHeaderCell: passthrough,
	domain.KindTableDataCell:   passthrough,
}

func passthrough(_ *domain.Element, parts []string) (string, error) {
	return strings.Join(parts, ""), nil
}

func suffix(s string) rule {
	return func(_ *domain.Element, parts []string) (string, error) {
		return strings.Join(parts, "") + s, nil
	}
}

func wrap(marker string) rule {
	return func(_ *domain.Element, parts []string) (string, error) {
		return marker + strings.Join(parts, "") + marker, nil
	}
}

func literal(s string) rule {
	return func(*domain.Element, []string) (string, error) {
		return s, nil
	}
}

func heading(el *domain.Element, parts []string) (string, error) {
	level := el.Kind().HeadingLevel()
	return strings.Repeat("#", level) + " " + strings.Join(parts, "") + "\n\n", nil
}

func codeBlock(el *domain.Element, parts []string) (string, error) {
	lang := el.Props.String("lang", "language")
	return "```" + lang + "\n" + strings.Join(parts, "") + "\n```\n\n", nil
}

func link(el *domain.Element, parts []string) (string, error) {
	href := el.Props.StringOr("#", "href")
	return "[" + strings.Join(parts, "") + "](" + href + ")", nil
}

func image(el *domain.Element, _ []string) (string, error) {
	return "![" + el.Props.String("alt") + "](" + el.Props.String("src") + ")", nil
}

// listItem numbers every ordered item "1." regardless of position.
func listItem(el *domain.Element, parts []string) (string, error) {
	prefix := "- "
	if parent := el.Parent(); parent != nil && parent.Kind() == domain.KindOrderedList {
		prefix = "1. "
	}
	return prefix + strings.Join(parts, "") + "\n", nil
}

func blockquote(_ *domain.Element, parts []string) (string, error) {
	lines := strings.Split(strings.Join(parts, ""), "\n")
	return "> " + strings.Join(lines, "\n> ") + "\n\n", nil
}

// tableRow keeps only element children as cells, trimming each one.
func tableRow(el *domain.Element, parts []string) (string, error) {
	cells := make([]string, 0, len(parts))
	for i, c := range el.Children {
		if _, ok := c.(*domain.Element); ok {
			cells = append(cells, strings.TrimSpace(parts[i]))
		}
	}

	row := "| " + strings.Join(cells, " | ") + " |\n"
	if parent := el.Parent(); parent != nil && parent.Kind() == domain.KindTableHead {
		sep := make([]string, len(cells))
		for i := range sep {
			sep[i] = " --- "
		}
		row += "|" + strings.Join(sep, "|") + "|\n"
	}
	return row, nil
}
