package domain

// TagKind is the closed set of element kinds the serializer formats.
// Every tag outside the set maps to KindUnknown.
type TagKind int

const (
	KindUnknown TagKind = iota
	KindRoot
	KindHeading1
	KindHeading2
	KindHeading3
	KindHeading4
	KindHeading5
	KindHeading6
	KindParagraph
	KindStrong
	KindEmphasis
	KindInlineCode
	KindCodeBlock
	KindLink
	KindImage
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindBlockquote
	KindLineBreak
	KindHorizontalRule
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableHeaderCell
	KindTableDataCell

	// NumKinds is the number of kinds, for tables indexed by TagKind.
	NumKinds
)

var tagKinds = map[string]TagKind{
	TagRoot:      KindRoot,
	"h1":         KindHeading1,
	"h2":         KindHeading2,
	"h3":         KindHeading3,
	"h4":         KindHeading4,
	"h5":         KindHeading5,
	"h6":         KindHeading6,
	"p":          KindParagraph,
	"strong":     KindStrong,
	"b":          KindStrong,
	"em":         KindEmphasis,
	"i":          KindEmphasis,
	"code":       KindInlineCode,
	"pre":        KindCodeBlock,
	"a":          KindLink,
	"img":        KindImage,
	"ul":         KindUnorderedList,
	"ol":         KindOrderedList,
	"li":         KindListItem,
	"blockquote": KindBlockquote,
	"br":         KindLineBreak,
	"hr":         KindHorizontalRule,
	"table":      KindTable,
	"thead":      KindTableHead,
	"tbody":      KindTableBody,
	"tr":         KindTableRow,
	"th":         KindTableHeaderCell,
	"td":         KindTableDataCell,
}

// KindOf classifies a tag.
func KindOf(tag string) TagKind {
	if k, ok := tagKinds[tag]; ok {
		return k
	}
	return KindUnknown
}

// HeadingLevel returns 1-6 for heading kinds and 0 otherwise.
func (k TagKind) HeadingLevel() int {
	if k >= KindHeading1 && k <= KindHeading6 {
		return int(k-KindHeading1) + 1
	}
	return 0
}

// TextBearing reports whether a tag marks its subtree as inline text.
func TextBearing(tag string) bool {
	return tag == "text" || tag == "span"
}
