package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/mdrender/pkg/adapters/file"
	"github.com/aretw0/mdrender/pkg/adapters/loam"
	"github.com/aretw0/mdrender/pkg/adapters/mcp"
	"github.com/aretw0/mdrender/pkg/ports"
)

// Supported MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions contains the configuration for the mcp command.
type MCPOptions struct {
	Transport string
	Addr      string
	// Dir serves stored descriptions when set.
	Dir   string
	Loam  bool
	Debug bool
}

// ServeMCP exposes the renderer as an MCP server.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger := createLogger(opts.Debug)

	loader, err := createLoader(opts.Dir, opts.Loam)
	if err != nil {
		return err
	}

	renderer, cleanup, err := createRenderer(ctx, logger, opts.Debug, CacheOptions{Memory: true}, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcp.NewServer(renderer, loader, logger)

	switch opts.Transport {
	case TransportStdio, "":
		logger.Info("Starting mdrender MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		return srv.ServeSSE(ctx, opts.Addr)
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
	}
}

// createLoader picks the description store for dir, or none.
func createLoader(dir string, useLoam bool) (ports.DescriptionLoader, error) {
	if dir == "" {
		return nil, nil
	}
	if useLoam {
		l, err := loam.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open loam repository: %w", err)
		}
		return l, nil
	}
	return file.New(dir), nil
}
