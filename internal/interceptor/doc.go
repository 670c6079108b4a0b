// Package interceptor provides the hook registrations mounted on the request
// pipeline: request/response logging, slow-request detection, per-endpoint
// metrics and Prometheus instrumentation.
//
// Each constructor returns a [pipeline.Hooks] value; callers register them
// with [pipeline.NewChain] in the order they should run.
package interceptor
