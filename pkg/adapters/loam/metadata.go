package loam

// DocumentMetadata is the frontmatter of a description document.
// It uses "mapstructure" tags to match the YAML/JSON keys.
type DocumentMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`

	// Description is the wire form of the description tree (see ui.Decode).
	Description any `json:"description" mapstructure:"description"`

	// Tags are informational and do not affect rendering.
	Tags []string `json:"tags" mapstructure:"tags"`
}
