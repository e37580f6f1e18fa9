package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/mdrender/internal/presentation/graph"
	"github.com/aretw0/mdrender/internal/presentation/tui"
	"github.com/aretw0/mdrender/pkg/adapters/file"
)

// RenderOptions contains all the configuration for the render command.
type RenderOptions struct {
	Path    string
	Format  string
	Output  string
	Preview bool
	Width   int
	Debug   bool
	Cache   CacheOptions
}

// Render loads a description, renders it and writes the markdown to Output,
// or to w (styled by glamour when Preview is set).
func Render(ctx context.Context, opts RenderOptions, w io.Writer) error {
	logger := createLogger(opts.Debug)

	desc, err := LoadDescription(opts.Path, opts.Format, os.Stdin)
	if err != nil {
		return err
	}

	renderer, cleanup, err := createRenderer(ctx, logger, opts.Debug, opts.Cache, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	md, err := renderer.RenderToString(ctx, desc)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if opts.Output != "" {
		if err := file.WriteAtomic(opts.Output, []byte(md)); err != nil {
			return err
		}
		logger.Info("markdown written", "path", opts.Output, "bytes", len(md))
		return nil
	}

	if opts.Preview {
		return tui.Preview(w, md, opts.Width)
	}
	_, err = io.WriteString(w, md)
	return err
}

// TreeOptions contains the configuration for the tree command.
type TreeOptions struct {
	Path   string
	Format string
	Debug  bool
}

// Tree commits a description and writes the document tree as a Mermaid chart.
func Tree(ctx context.Context, opts TreeOptions, w io.Writer) error {
	logger := createLogger(opts.Debug)

	desc, err := LoadDescription(opts.Path, opts.Format, os.Stdin)
	if err != nil {
		return err
	}

	renderer, cleanup, err := createRenderer(ctx, logger, opts.Debug, CacheOptions{}, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	root, err := renderer.Tree(ctx, desc)
	if err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(root))
	return err
}
