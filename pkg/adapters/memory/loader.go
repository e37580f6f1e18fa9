package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Loader implements ports.DescriptionLoader using an in-memory map.
type Loader struct {
	descs map[string]ui.Node
}

// NewLoader creates a Loader serving the given descriptions.
func NewLoader(descs map[string]ui.Node) *Loader {
	copied := make(map[string]ui.Node, len(descs))
	for k, v := range descs {
		copied[k] = v
	}
	return &Loader{descs: copied}
}

// NewFromRaw creates a Loader from generic values, as decoded from JSON or
// YAML. Each value goes through ui.Decode.
func NewFromRaw(raw map[string]any) (*Loader, error) {
	descs := make(map[string]ui.Node, len(raw))
	for id, v := range raw {
		n, err := ui.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("failed to decode description %s: %w", id, err)
		}
		descs[id] = n
	}
	return &Loader{descs: descs}, nil
}

// Load retrieves a description by ID.
func (l *Loader) Load(ctx context.Context, id string) (ui.Node, error) {
	n, ok := l.descs[id]
	if !ok {
		return ui.Empty, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	return n, nil
}

// List returns all available description IDs.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.descs))
	for k := range l.descs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
