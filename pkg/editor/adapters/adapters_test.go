package adapters

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/editorschema/pkg/editor"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingSource remembers the routes it was asked for
type recordingSource struct {
	mu     sync.Mutex
	routes []string
}

func (s *recordingSource) JSONFromAction(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route)
	return `{"route":"` + route + `"}`
}

func newGenerator(t *testing.T) *editor.Generator {
	t.Helper()

	registry := editor.NewInMemoryActionRegistry()
	require.NoError(t, registry.Register(editor.Action{
		ID:     "detail",
		Params: []editor.Parameter{{Name: "productId"}},
	}))

	return editor.NewGenerator(
		editor.Controller{ID: "product", DefaultAction: "index"},
		registry,
		editor.WithLogger(editor.NopLogger{}),
	)
}

// serve runs req against the adapter and returns status, headers and body
func serve(t *testing.T, server Server, req *http.Request) (int, http.Header, string) {
	t.Helper()

	switch s := server.(type) {
	case *FiberAdapter:
		resp, err := s.App().Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, resp.Header, string(body)
	case *EchoAdapter:
		rec := httptest.NewRecorder()
		s.Engine().ServeHTTP(rec, req)
		return rec.Code, rec.Header(), rec.Body.String()
	case *GinAdapter:
		rec := httptest.NewRecorder()
		s.Engine().ServeHTTP(rec, req)
		return rec.Code, rec.Header(), rec.Body.String()
	}

	t.Fatalf("unsupported server %T", server)
	return 0, nil, ""
}

var factories = []func(SchemaSource) Server{
	func(s SchemaSource) Server { return NewDefaultEchoAdapter(s) },
	func(s SchemaSource) Server { return NewDefaultGinAdapter(s) },
	func(s SchemaSource) Server { return NewDefaultFiberAdapter(s) },
}

func allAdapters(source SchemaSource) []Server {
	servers := make([]Server, 0, len(factories))
	for _, build := range factories {
		servers = append(servers, build(source))
	}
	return servers
}

func TestAdapters_Names(t *testing.T) {
	var names []string
	for _, server := range allAdapters(&recordingSource{}) {
		names = append(names, server.Name())
	}
	assert.Equal(t, []string{"Echo", "Gin", "Fiber"}, names)
}

func TestAdapters_ServeGeneratedSchema(t *testing.T) {
	generator := newGenerator(t)
	expected := generator.JSONFromAction("product/detail")

	for _, server := range allAdapters(generator) {
		t.Run(server.Name(), func(t *testing.T) {
			server.Mount("/schema")

			req := httptest.NewRequest(http.MethodGet, "/schema/product/detail", nil)
			status, header, body := serve(t, server, req)

			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "application/json; charset=utf-8", header.Get("Content-Type"))
			assert.JSONEq(t, expected, body)
		})
	}
}

func TestAdapters_UnknownRouteServesFallback(t *testing.T) {
	generator := newGenerator(t)

	for _, server := range allAdapters(generator) {
		t.Run(server.Name(), func(t *testing.T) {
			server.Mount("schema/")

			req := httptest.NewRequest(http.MethodGet, "/schema/product/missing", nil)
			status, _, body := serve(t, server, req)

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, editor.DefaultFallbackSchema, body)
		})
	}
}

func TestAdapters_PassRouteToSource(t *testing.T) {
	for _, build := range factories {
		source := &recordingSource{}
		server := build(source)

		t.Run(server.Name(), func(t *testing.T) {
			server.Mount("/schema")

			req := httptest.NewRequest(http.MethodGet, "/schema/admin/product/list-all", nil)
			_, _, body := serve(t, server, req)

			require.Len(t, source.routes, 1)
			assert.Contains(t, source.routes[0], "admin/product/list-all")
			assert.Contains(t, body, "admin/product/list-all")
		})
	}
}

func TestAdapters_RequestID(t *testing.T) {
	for _, server := range allAdapters(&recordingSource{}) {
		t.Run(server.Name(), func(t *testing.T) {
			server.Mount("/schema")

			req := httptest.NewRequest(http.MethodGet, "/schema/product/detail", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			_, header, _ := serve(t, server, req)
			assert.Equal(t, "abc-123", header.Get(RequestIDHeader))

			req = httptest.NewRequest(http.MethodGet, "/schema/product/detail", nil)
			_, header, _ = serve(t, server, req)
			_, err := uuid.Parse(header.Get(RequestIDHeader))
			assert.NoError(t, err)
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"/", ""},
		{"schema", "/schema"},
		{"/schema/", "/schema"},
		{"api/schema", "/api/schema"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePrefix(tt.input))
		})
	}
}

func TestGinAdapter_StopBeforeStart(t *testing.T) {
	server := NewDefaultGinAdapter(&recordingSource{})
	server.Mount("/schema")

	require.NoError(t, server.Stop(context.Background()))

	done := make(chan error, 1)
	go func() { done <- server.Start("127.0.0.1:0") }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		_ = server.Stop(context.Background())
		t.Fatal("Start kept serving after Stop")
	}
}
