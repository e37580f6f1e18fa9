package ports

import (
	"context"

	"github.com/aretw0/mdrender/pkg/ui"
)

// DescriptionLoader retrieves named descriptions.
// This allows the storage layer (files, Loam) to be decoupled from rendering.
type DescriptionLoader interface {
	// Load returns the description stored under id.
	// Returns domain.ErrNotFound if it does not exist.
	Load(ctx context.Context, id string) (ui.Node, error)

	// List returns the IDs of every available description.
	List(ctx context.Context) ([]string, error)
}
