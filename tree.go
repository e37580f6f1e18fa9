package mdrender

import (
	"context"
	"fmt"

	"github.com/aretw0/mdrender/pkg/adapters/doctree"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/reconciler"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Tree commits desc into a fresh container and returns the container
// without serializing it. Hooks and the cache are not involved.
func (r *Renderer) Tree(ctx context.Context, desc ui.Node) (*domain.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	host := doctree.New(doctree.WithLogger(r.logger))
	rec, err := reconciler.New[*domain.Element, domain.Node, *doctree.HostContext, domain.Props](host,
		reconciler.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	root := rec.CreateContainer(domain.NewContainer())
	if err := root.UpdateContainerSync(desc, nil); err != nil {
		return nil, fmt.Errorf("submit render: %w", err)
	}
	if !host.Completed() {
		return nil, domain.ErrCommitIncomplete
	}
	return host.LastRoot(), nil
}
