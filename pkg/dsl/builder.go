package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/mdrender/pkg/adapters/memory"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Builder manages a set of named documents.
type Builder struct {
	docs  map[string]*DocBuilder
	order []string
}

// New creates a new document set builder.
func New() *Builder {
	return &Builder{
		docs: make(map[string]*DocBuilder),
	}
}

// Add creates a new document.
// If the document already exists, it returns the existing builder.
func (b *Builder) Add(id string) *DocBuilder {
	if db, ok := b.docs[id]; ok {
		return db
	}
	db := &DocBuilder{id: id}
	b.docs[id] = db
	b.order = append(b.order, id)
	return db
}

// Build compiles the documents into a memory.Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	descs := make(map[string]ui.Node, len(b.docs))
	var errs []error
	for _, id := range b.order {
		if id == "" {
			errs = append(errs, errors.New("document missing ID"))
			continue
		}
		desc, err := b.docs[id].Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		descs[id] = desc
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build documents: %w", err)
	}
	return memory.NewLoader(descs), nil
}
