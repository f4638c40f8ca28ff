// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running transport (e.g., the HTTP server) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks, accepting work until the delivery is shut down.
	Serve(ctx context.Context) error
}
