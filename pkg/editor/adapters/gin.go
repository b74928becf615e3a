package adapters

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAdapter serves schemas from a Gin engine
type GinAdapter struct {
	engine *gin.Engine
	source SchemaSource

	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine, source SchemaSource) *GinAdapter {
	return &GinAdapter{
		engine: g,
		source: source,
		server: &http.Server{Handler: g},
	}
}

// NewDefaultGinAdapter creates a new Gin adapter with a recovering Gin engine
func NewDefaultGinAdapter(source SchemaSource) *GinAdapter {
	g := gin.New()
	g.Use(gin.Recovery())
	return NewGinAdapter(g, source)
}

// Mount registers the schema route under prefix
func (ga *GinAdapter) Mount(prefix string) {
	ga.engine.GET(normalizePrefix(prefix)+"/*route", ga.handle)
}

func (ga *GinAdapter) handle(c *gin.Context) {
	id := requestID(c.GetHeader(RequestIDHeader))
	c.Header(RequestIDHeader, id)

	schema := ga.source.JSONFromAction(c.Param("route"))
	c.Data(http.StatusOK, contentTypeJSON, []byte(schema))
}

// Start listens on addr and serves the Gin engine. It returns nil once Stop
// has been called, including when Stop ran first.
func (ga *GinAdapter) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if err := ga.server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (ga *GinAdapter) Stop(ctx context.Context) error {
	return ga.server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// Engine returns the underlying Gin engine
func (ga *GinAdapter) Engine() *gin.Engine {
	return ga.engine
}
