// Package adapters serves generated editor schemas over Echo, Gin and Fiber.
package adapters

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id echoed on every schema response
const RequestIDHeader = "X-Request-ID"

const contentTypeJSON = "application/json; charset=utf-8"

// SchemaSource produces the schema JSON for a route. *editor.Generator
// implements it.
type SchemaSource interface {
	JSONFromAction(route string) string
}

// Server is a web framework that can serve schemas
type Server interface {
	// Mount registers GET <prefix>/*route
	Mount(prefix string)

	Start(addr string) error
	Stop(ctx context.Context) error

	// Name returns the framework name
	Name() string
}

// requestID returns incoming, or a fresh UUID when the client sent none
func requestID(incoming string) string {
	if incoming != "" {
		return incoming
	}
	return uuid.NewString()
}

// normalizePrefix returns prefix with a leading slash and no trailing slash
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
