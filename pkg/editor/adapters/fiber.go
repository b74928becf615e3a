package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// FiberAdapter serves schemas from a Fiber app
type FiberAdapter struct {
	app    *fiber.App
	source SchemaSource
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter(app *fiber.App, source SchemaSource) *FiberAdapter {
	return &FiberAdapter{app: app, source: source}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with panic recovery
func NewDefaultFiberAdapter(source SchemaSource) *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())

	return NewFiberAdapter(app, source)
}

// Mount registers the schema route under prefix
func (fa *FiberAdapter) Mount(prefix string) {
	fa.app.Get(normalizePrefix(prefix)+"/*", fa.handle)
}

func (fa *FiberAdapter) handle(c *fiber.Ctx) error {
	id := requestID(c.Get(RequestIDHeader))
	c.Set(RequestIDHeader, id)
	c.Set(fiber.HeaderContentType, contentTypeJSON)

	return c.Status(fiber.StatusOK).SendString(fa.source.JSONFromAction(c.Params("*")))
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}
