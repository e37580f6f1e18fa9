package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentsURI lists the IDs served by the loader.
const DocumentsURI = "mdrender://documents"

// RenderResponse mirrors the HTTP adapter's response body.
type RenderResponse struct {
	Markdown string `json:"markdown" jsonschema_description:"The rendered markdown"`
}

// RenderArgs are the arguments of the render_markdown tool.
type RenderArgs struct {
	Description string `json:"description"`
}

// DocumentArgs are the arguments of the render_document tool.
type DocumentArgs struct {
	ID string `json:"id"`
}

// Server exposes a renderer as an MCP Server.
type Server struct {
	renderer  ports.Renderer
	loader    ports.DescriptionLoader
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// The loader is optional; without it only render_markdown is registered.
func NewServer(renderer ports.Renderer, loader ports.DescriptionLoader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		renderer:  renderer,
		loader:    loader,
		logger:    logger,
		mcpServer: server.NewMCPServer("mdrender-mcp", strings.TrimSpace(mdrender.Version)),
	}
	s.registerTools()
	if loader != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on addr using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: render_markdown
	renderTool := mcp.NewTool("render_markdown",
		mcp.WithDescription("Render a UI description (JSON: strings, lists and {type, props, children} maps) to Markdown."),
		mcp.WithString("description", mcp.Required(), mcp.Description("JSON encoded description")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderMarkdown))

	if s.loader == nil {
		return
	}

	// TOOL: render_document
	documentTool := mcp.NewTool("render_document",
		mcp.WithDescription("Render a stored description by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID as returned by list_documents")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(documentTool, mcp.NewStructuredToolHandler(s.handleRenderDocument))

	// TOOL: list_documents
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the IDs of the stored descriptions."),
	), s.handleListDocuments)
}

func (s *Server) handleRenderMarkdown(ctx context.Context, request mcp.CallToolRequest, args RenderArgs) (RenderResponse, error) {
	if strings.TrimSpace(args.Description) == "" {
		return RenderResponse{}, errors.New("description is required")
	}

	clean, err := SanitizeInput(args.Description)
	if err != nil {
		s.logger.Warn("MCP render_markdown: input rejected", "err", err, "size", len(args.Description))
		return RenderResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		s.logger.Warn("MCP render_markdown: invalid JSON", "err", err)
		return RenderResponse{}, fmt.Errorf("invalid description JSON: %w", err)
	}

	desc, err := ui.Decode(raw)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("invalid description: %w", err)
	}
	return s.render(ctx, desc)
}

func (s *Server) handleRenderDocument(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (RenderResponse, error) {
	if args.ID == "" {
		return RenderResponse{}, errors.New("id is required")
	}
	desc, err := s.loader.Load(ctx, args.ID)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("load %q: %w", args.ID, err)
	}
	return s.render(ctx, desc)
}

func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.loader.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) render(ctx context.Context, desc ui.Node) (RenderResponse, error) {
	md, err := s.renderer.RenderToString(ctx, desc)
	if err != nil {
		s.logger.Error("MCP render failed", "err", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return RenderResponse{Markdown: md}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: mdrender://documents
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Stored Descriptions",
		mcp.WithMIMEType("application/json"),
	), s.readDocuments)
}

func (s *Server) readDocuments(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.loader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	jsonBytes, _ := json.Marshal(ids)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocumentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
