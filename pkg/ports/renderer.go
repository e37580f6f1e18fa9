package ports

import (
	"context"

	"github.com/aretw0/mdrender/pkg/ui"
)

// Renderer turns a description into markdown.
// This is the interface used by adapters (HTTP, MCP) that render per request.
type Renderer interface {
	RenderToString(ctx context.Context, desc ui.Node) (string, error)
}
