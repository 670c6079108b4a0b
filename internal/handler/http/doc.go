// Package http implements the HTTP transport layer of go-guardian.
//
// It wires the request pipeline onto a chi router: request tracking, the
// interceptor chain, security headers, CORS, compression and rate limiting
// run on every request; authentication and role guards run on the routes
// that need them. Handlers never write error responses themselves, they
// report failures to the pipeline which translates them.
package http
