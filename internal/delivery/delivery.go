// Package delivery defines the transport entry points started by the application.
package delivery

import "context"

// Delivery is a long-running transport (HTTP API) started once the fx graph is built.
type Delivery interface {
	// Serve blocks until the transport stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
