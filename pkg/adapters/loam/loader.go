package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Loader adapts a Loam repository to ports.DescriptionLoader.
//
// A document becomes a fragment of: an h1 built from the title, the decoded
// description tree, and the document body appended verbatim. Any of the three
// may be absent.
type Loader struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number, which ui.Decode accepts.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DocumentMetadata](repo)), nil
}

// Load retrieves a description from the repository.
func (l *Loader) Load(ctx context.Context, id string) (ui.Node, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || !l.exists(ctx, id) {
			return ui.Empty, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
		}
		return ui.Empty, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	var parts []ui.Node
	if doc.Data.Title != "" {
		parts = append(parts, ui.H("h1", nil, ui.Text(doc.Data.Title)))
	}
	if doc.Data.Description != nil {
		desc, err := ui.Decode(doc.Data.Description)
		if err != nil {
			return ui.Empty, fmt.Errorf("invalid description in %s: %w", id, err)
		}
		parts = append(parts, desc)
	}
	if body := strings.TrimSpace(doc.Content); body != "" {
		parts = append(parts, ui.Text(body+"\n"))
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return ui.Fragment(parts...), nil
}

// List lists all descriptions in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// exists tells a missing document apart from one that failed to load.
func (l *Loader) exists(ctx context.Context, id string) bool {
	ids, err := l.List(ctx)
	if err != nil {
		return true
	}
	for _, known := range ids {
		if known == id {
			return true
		}
	}
	return false
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
