package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes bounds the size of a render request body.
const DefaultMaxBodyBytes = 1 << 20

// ContentTypeMarkdown is returned when the client asks for raw markdown.
const ContentTypeMarkdown = "text/markdown; charset=utf-8"

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	// Description is the wire form accepted by ui.Decode.
	Description any `json:"description"`
}

// RenderResponse is the JSON body returned by POST /render.
type RenderResponse struct {
	Markdown string `json:"markdown"`
}

// ErrorResponse is returned for failed requests when JSON was requested.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves the render API over a ports.Renderer.
type Server struct {
	Renderer ports.Renderer

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	maxBody  int64
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes the given registry on GET /metrics.
// Without it the endpoint is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBody = n
	}
}

// WithRenderTimeout bounds how long a single render may take.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewHandler creates a new HTTP handler for the renderer.
func NewHandler(renderer ports.Renderer, opts ...Option) http.Handler {
	server := &Server{
		Renderer: renderer,
		logger:   slog.Default(),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Post("/render", server.Render)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Render handles the POST /render request.
// The markdown is returned raw when the Accept header prefers text/markdown,
// and wrapped in a RenderResponse otherwise.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	raw := wantsMarkdown(r)

	var body RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, raw, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.fail(w, raw, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Render: Invalid request body", "err", err)
		return
	}
	if body.Description == nil {
		s.fail(w, raw, http.StatusBadRequest, "Missing description")
		return
	}

	desc, err := ui.Decode(body.Description)
	if err != nil {
		s.fail(w, raw, http.StatusBadRequest, fmt.Sprintf("Invalid description: %v", err))
		s.logger.Warn("Render: Invalid description", "err", err)
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	md, err := s.Renderer.RenderToString(ctx, desc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		s.fail(w, raw, status, fmt.Sprintf("Render error: %v", err))
		s.logger.Error("Render failed", "err", err)
		return
	}

	if raw {
		w.Header().Set("Content-Type", ContentTypeMarkdown)
		if _, err := io.WriteString(w, md); err != nil {
			s.logger.Error("Render response write failed", "err", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RenderResponse{Markdown: md}); err != nil {
		s.logger.Error("Render response encode failed", "err", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"app":     "mdrender-http",
		"version": strings.TrimSpace(mdrender.Version),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) fail(w http.ResponseWriter, raw bool, status int, msg string) {
	if raw {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func wantsMarkdown(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/markdown") || strings.Contains(accept, "text/plain")
}
