package adapters

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EchoAdapter serves schemas from an Echo v4 instance
type EchoAdapter struct {
	engine *echo.Echo
	source SchemaSource
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo, source SchemaSource) *EchoAdapter {
	return &EchoAdapter{engine: e, source: source}
}

// NewDefaultEchoAdapter creates a new Echo adapter with a default Echo instance
func NewDefaultEchoAdapter(source SchemaSource) *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return NewEchoAdapter(e, source)
}

// Mount registers the schema route under prefix
func (ea *EchoAdapter) Mount(prefix string) {
	ea.engine.GET(normalizePrefix(prefix)+"/*", ea.handle)
}

func (ea *EchoAdapter) handle(c echo.Context) error {
	id := requestID(c.Request().Header.Get(RequestIDHeader))
	c.Response().Header().Set(RequestIDHeader, id)

	schema := ea.source.JSONFromAction(c.Param("*"))
	return c.Blob(http.StatusOK, contentTypeJSON, []byte(schema))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// Engine returns the underlying Echo instance
func (ea *EchoAdapter) Engine() *echo.Echo {
	return ea.engine
}
