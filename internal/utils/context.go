// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token signing
// and parsing, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-guardian/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestContextCtxKey stores the models.RequestContext assigned by the
	// tracking middleware.
	RequestContextCtxKey = contextKey("requestContext")

	// PrincipalCtxKey stores the models.Principal of an authenticated request.
	PrincipalCtxKey = contextKey("principal")

	// TokenCtxKey stores the raw access token the principal was decoded from.
	TokenCtxKey = contextKey("token")
)

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc models.RequestContext) context.Context {
	return context.WithValue(ctx, RequestContextCtxKey, rc)
}

// GetRequestContext retrieves the request identity stored by WithRequestContext.
//
// Returns ok == false when the value is missing or has an unexpected type.
func GetRequestContext(ctx context.Context) (models.RequestContext, bool) {
	rc, ok := ctx.Value(RequestContextCtxKey).(models.RequestContext)
	return rc, ok
}

// WithPrincipal returns a copy of ctx carrying the verified principal and the
// raw token it came from.
func WithPrincipal(ctx context.Context, principal models.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, PrincipalCtxKey, principal)
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetPrincipalFromContext retrieves the principal attached by WithPrincipal.
//
// Example usage:
//
//	principal, ok := utils.GetPrincipalFromContext(ctx)
//	if !ok {
//	    // request is not authenticated
//	}
func GetPrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	return principal, ok
}

// GetTokenFromContext retrieves the raw access token attached by WithPrincipal.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
