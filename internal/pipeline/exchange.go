package pipeline

import (
	"context"
	"net/http"
	"time"
)

type exchangeCtxKey struct{}

// Exchange is the per-request state observed by interceptor hooks.
//
// Status is final once the After hooks run; Err is set before the Error
// hooks run.
type Exchange struct {
	// Request is the request as it entered the chain. Values attached to the
	// context further down (principal, route params) are not visible here,
	// the chi route context is.
	Request *http.Request
	Start   time.Time

	// ResponseHeader is the response header map. After hooks may still
	// modify it, the status line has not been sent yet.
	ResponseHeader http.Header

	Status int
	Err    error

	// translated is set once the Error hooks ran for Err.
	translated bool
	aborted    bool

	values map[string]any
}

// Elapsed returns the time since the request entered the chain.
func (ex *Exchange) Elapsed() time.Duration {
	return time.Since(ex.Start)
}

// Set stores a value for later hooks of the same request.
func (ex *Exchange) Set(key string, value any) {
	if ex.values == nil {
		ex.values = make(map[string]any)
	}
	ex.values[key] = value
}

// Get returns a value stored with Set.
func (ex *Exchange) Get(key string) (any, bool) {
	v, ok := ex.values[key]
	return v, ok
}

// fail records err unless an earlier failure was already recorded.
func (ex *Exchange) fail(err error) {
	if ex.Err == nil {
		ex.Err = err
	}
}

func withExchange(ctx context.Context, ex *Exchange) context.Context {
	return context.WithValue(ctx, exchangeCtxKey{}, ex)
}

// FromContext returns the exchange of the chain serving ctx.
func FromContext(ctx context.Context) (*Exchange, bool) {
	ex, ok := ctx.Value(exchangeCtxKey{}).(*Exchange)
	return ex, ok
}
