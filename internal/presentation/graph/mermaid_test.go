package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/mdrender/internal/presentation/graph"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) *domain.Element {
	t.Helper()
	root := domain.NewContainer()
	h1 := domain.NewElement("h1", nil)
	p := domain.NewElement("p", nil)
	strong := domain.NewElement("strong", nil)
	custom := domain.NewElement("x-note", nil)

	require.NoError(t, h1.AppendChild(domain.NewText(`Say "hi"`)))
	require.NoError(t, strong.AppendChild(domain.NewText("bold")))
	require.NoError(t, p.AppendChild(strong))
	require.NoError(t, custom.AppendChild(domain.NewText(strings.Repeat("a", 40))))
	require.NoError(t, root.AppendChild(h1))
	require.NoError(t, root.AppendChild(p))
	require.NoError(t, root.AppendChild(custom))
	return root
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(buildTree(t))

	tests := []struct {
		name     string
		contains []string
	}{
		{"Container Shape", []string{`n0(("root"))`}},
		{"Block Shape", []string{`n1["h1"]`, `n3["p"]`}},
		{"Text Escaping", []string{`n2[/"Say 'hi'"/]`}},
		{"Inline Shape", []string{`n4("strong")`}},
		{"Unknown Shape", []string{`n6[["x-note"]]`, "class n6 unknown;"}},
		{"Edges", []string{"n0 --> n1", "n1 --> n2", "n3 --> n4", "n4 --> n5", "n0 --> n6"}},
		{"Truncation", []string{strings.Repeat("a", graph.MaxLabel-1) + "…"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_NoUnknownClass(t *testing.T) {
	root := domain.NewContainer()
	require.NoError(t, root.AppendChild(domain.NewElement("hr", nil)))

	out := graph.GenerateMermaid(root)

	assert.Equal(t, "graph TD\n    n0((\"root\"))\n    n1[\"hr\"]\n    n0 --> n1\n", out)
}
