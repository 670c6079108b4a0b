package pipeline

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-guardian/internal/logger"
)

// Hooks is one interceptor registration. Any of the callbacks may be nil.
//
// Before runs when the request enters the chain; a non-nil error stops the
// request. After runs once on response finalization with ex.Status already
// decided. Error runs when the request failed, before the response is
// translated. Errors returned by After and Error are logged only.
type Hooks struct {
	Name string

	Before func(ex *Exchange) error
	After  func(ex *Exchange) error
	Error  func(ex *Exchange, err error) error
}

// Chain composes hook registrations into a single middleware. Registration
// order is execution order for all three phases.
type Chain struct {
	hooks     []Hooks
	translate func(w http.ResponseWriter, r *http.Request, err error)
}

func NewChain(hooks ...Hooks) *Chain {
	return &Chain{
		hooks:     hooks,
		translate: Translate,
	}
}

// Middleware returns the chain as a func(http.Handler) http.Handler suitable
// for chi's Use.
func (c *Chain) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex := &Exchange{Start: time.Now()}
		r = r.WithContext(withExchange(r.Context(), ex))
		ex.Request = r
		ex.ResponseHeader = w.Header()

		rw := newResponseWriter(w, func(status int) {
			ex.Status = status
			c.runAfter(ex)
		})
		defer c.finish(rw, ex)

		if hook, err := c.runBefore(ex); err != nil {
			ex.fail(err)
			c.runError(ex, []Hooks{hook})
			c.translate(rw, r, err)
			return
		}

		c.serve(next, rw, r, ex)
	})
}

// serve calls next, converting a panic into an unclassified failure.
// [http.ErrAbortHandler] is re-raised so net/http can abort the connection.
func (c *Chain) serve(next http.Handler, w http.ResponseWriter, r *http.Request, ex *Exchange) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			ex.aborted = true
			panic(rec)
		}
		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec)
		}
		ex.fail(fmt.Errorf("panic recovered: %w", err))
	}()

	next.ServeHTTP(w, r)
}

// finish handles a failure reported below the chain, then makes sure the
// response is finalized even when nothing was written.
func (c *Chain) finish(rw *responseWriter, ex *Exchange) {
	if ex.aborted {
		return
	}
	if ex.Err != nil && !ex.translated {
		c.runError(ex, c.hooks)
		c.translate(rw, ex.Request, ex.Err)
	}
	if !rw.Committed() {
		rw.WriteHeader(http.StatusOK)
	}
}

func (c *Chain) runBefore(ex *Exchange) (Hooks, error) {
	for _, hook := range c.hooks {
		if hook.Before == nil {
			continue
		}
		if err := hook.Before(ex); err != nil {
			return hook, err
		}
	}
	return Hooks{}, nil
}

func (c *Chain) runAfter(ex *Exchange) {
	for _, hook := range c.hooks {
		if hook.After == nil {
			continue
		}
		if err := hook.After(ex); err != nil {
			logger.FromRequest(ex.Request).Err(err).
				Str("func", "Chain.runAfter").
				Str("interceptor", hook.Name).
				Msg("after hook failed")
		}
	}
}

func (c *Chain) runError(ex *Exchange, hooks []Hooks) {
	ex.translated = true
	for _, hook := range hooks {
		if hook.Error == nil {
			continue
		}
		if err := hook.Error(ex, ex.Err); err != nil {
			logger.FromRequest(ex.Request).Err(err).
				Str("func", "Chain.runError").
				Str("interceptor", hook.Name).
				Msg("error hook failed")
		}
	}
}
