// Package server runs the HTTP transport of the service.
//
// It owns the listener lifecycle: startup, serving until the process context
// is cancelled, and graceful shutdown bounded by the configured timeout.
package server
