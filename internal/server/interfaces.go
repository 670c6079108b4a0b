package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the transport server.
//
// Both methods block until ctx is cancelled, then drain in-flight requests
// and return.
type Server interface {
	// Run listens on the configured address and serves requests.
	Run(ctx context.Context) error

	// Serve serves requests on an already open listener.
	Serve(ctx context.Context, listener net.Listener) error
}
