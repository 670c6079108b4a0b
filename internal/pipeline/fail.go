package pipeline

import "net/http"

// Fail reports err for the request served by w and r. Inside a Chain the
// error is recorded, the first one wins, and translated when the chain
// unwinds; the caller must return without writing. Outside a Chain the error
// is translated immediately.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if ex, ok := FromContext(r.Context()); ok {
		ex.fail(err)
		return
	}
	Translate(w, r, err)
}

// HandlerFunc is an http handler that returns its failure instead of writing
// it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to an [http.Handler] reporting its error with Fail.
func Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			Fail(w, r, err)
		}
	})
}

// GuardFunc admits or rejects a request. On success it may return a derived
// request, e.g. one carrying an authenticated principal.
type GuardFunc func(r *http.Request) (*http.Request, error)

// Guard adapts fn to a middleware. A rejected request never reaches next.
func Guard(fn GuardFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admitted, err := fn(r)
			if err != nil {
				Fail(w, r, err)
				return
			}
			if admitted == nil {
				admitted = r
			}
			next.ServeHTTP(w, admitted)
		})
	}
}
