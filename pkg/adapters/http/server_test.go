package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/observability"
	"github.com/aretw0/mdrender/pkg/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRenderer for testing failures
type MockRenderer struct {
	Err error
}

func (m *MockRenderer) RenderToString(ctx context.Context, desc ui.Node) (string, error) {
	return "", m.Err
}

const renderBody = `{"description": [
	{"type": "h1", "children": ["Hello"]},
	{"type": "p", "children": ["World ", {"type": "strong", "children": ["bold"]}]}
]}`

func TestRender_JSON(t *testing.T) {
	handler := NewHandler(mdrender.New())

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "# Hello\n\nWorld **bold**\n\n", resp.Markdown)
}

func TestRender_RawMarkdown(t *testing.T) {
	handler := NewHandler(mdrender.New())

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	req.Header.Set("Accept", "text/markdown")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypeMarkdown, w.Header().Get("Content-Type"))
	assert.Equal(t, "# Hello\n\nWorld **bold**\n\n", w.Body.String())
}

func TestRender_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"description":`, "Invalid request body"},
		{"missing description", `{}`, "Missing description"},
		{"untyped element", `{"description": {"props": {}}}`, "missing type"},
	}

	handler := NewHandler(mdrender.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/render", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Contains(t, resp.Error, tt.want)
		})
	}
}

func TestRender_RendererError(t *testing.T) {
	handler := NewHandler(&MockRenderer{Err: errors.New("boom")})

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	req.Header.Set("Accept", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Render error: boom")
}

func TestRender_RendererTimeout(t *testing.T) {
	handler := NewHandler(&MockRenderer{Err: context.DeadlineExceeded})

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRender_BodyLimit(t *testing.T) {
	handler := NewHandler(mdrender.New(), WithMaxBodyBytes(8))

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "exceeds 8 bytes")
}

func TestRender_BodyWithinLimit(t *testing.T) {
	handler := NewHandler(mdrender.New(), WithMaxBodyBytes(int64(len(renderBody))))

	req := httptest.NewRequest("POST", "/render", strings.NewReader(renderBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndInfo(t *testing.T) {
	handler := NewHandler(mdrender.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, strings.TrimSpace(mdrender.Version), info["version"])
}

func TestCORSPreflight(t *testing.T) {
	handler := NewHandler(mdrender.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/render", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	renderer := mdrender.New(mdrender.WithLifecycleHooks(metrics.Hooks()))
	handler := NewHandler(renderer, WithGatherer(reg))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/render", strings.NewReader(renderBody)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mdrender_renders_total")
}

func TestMetricsEndpoint_NotMountedByDefault(t *testing.T) {
	handler := NewHandler(mdrender.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
