package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects hook invocations for one test.
type recorder struct {
	calls []string
}

func (rec *recorder) hooks(name string, beforeErr error) Hooks {
	return Hooks{
		Name: name,
		Before: func(ex *Exchange) error {
			rec.calls = append(rec.calls, name+".before")
			return beforeErr
		},
		After: func(ex *Exchange) error {
			rec.calls = append(rec.calls, name+".after:"+http.StatusText(ex.Status))
			return nil
		},
		Error: func(ex *Exchange, err error) error {
			rec.calls = append(rec.calls, name+".error")
			return nil
		},
	}
}

func serve(t *testing.T, chain *Chain, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	chain.Middleware(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestChain_SuccessOrder(t *testing.T) {
	rec := &recorder{}
	chain := NewChain(rec.hooks("a", nil), rec.hooks("b", nil))

	w := serve(t, chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.calls = append(rec.calls, "handler")
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusTeapot) // ignored
		_, _ = w.Write([]byte("ok"))
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"a.before", "b.before", "handler", "a.after:Created", "b.after:Created"}, rec.calls)
}

func TestChain_NothingWritten_FinalizesWith200(t *testing.T) {
	rec := &recorder{}
	chain := NewChain(rec.hooks("a", nil))

	w := serve(t, chain, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a.before", "a.after:OK"}, rec.calls)
}

func TestChain_BeforeFailure(t *testing.T) {
	rec := &recorder{}
	handlerCalled := false
	chain := NewChain(
		rec.hooks("a", nil),
		rec.hooks("b", app.Authentication("nope")),
		rec.hooks("c", nil),
	)

	w := serve(t, chain, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	}))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "nope", decodeError(t, w).Message)
	assert.Equal(t, []string{
		"a.before", "b.before",
		"b.error",
		"a.after:Unauthorized", "b.after:Unauthorized", "c.after:Unauthorized",
	}, rec.calls)
}

func TestChain_HandlerFailure_ErrorHooksBeforeTranslation(t *testing.T) {
	rec := &recorder{}
	var translatedBeforeErrorHooks bool
	observer := Hooks{
		Name: "observer",
		Error: func(ex *Exchange, err error) error {
			translatedBeforeErrorHooks = ex.Status != 0
			return nil
		},
	}
	chain := NewChain(rec.hooks("a", nil), observer, rec.hooks("b", nil))

	w := serve(t, chain, Handle(func(w http.ResponseWriter, r *http.Request) error {
		return app.NotFound("User")
	}))

	assert.False(t, translatedBeforeErrorHooks)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrorResponse{Status: "error", Message: "User not found"}, decodeError(t, w))
	assert.Equal(t, []string{
		"a.before", "b.before",
		"a.error", "b.error",
		"a.after:Not Found", "b.after:Not Found",
	}, rec.calls)
}

func TestChain_FirstFailureWins(t *testing.T) {
	chain := NewChain()

	w := serve(t, chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Fail(w, r, app.Validation("first"))
		Fail(w, r, app.Authentication("second"))
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "first", decodeError(t, w).Message)
}

func TestChain_PanicBecomesInternalError(t *testing.T) {
	rec := &recorder{}
	chain := NewChain(rec.hooks("a", nil))

	w := serve(t, chain, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("database password is hunter2")
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Equal(t, []string{"a.before", "a.error", "a.after:Internal Server Error"}, rec.calls)
}

func TestChain_AbortHandlerPanicIsReraised(t *testing.T) {
	chain := NewChain()

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(t, chain, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
	})
}

func TestChain_FailureAfterCommitOnlyLogs(t *testing.T) {
	rec := &recorder{}
	chain := NewChain(rec.hooks("a", nil))

	w := serve(t, chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		Fail(w, r, errors.New("late failure"))
	}))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
	assert.Equal(t, []string{"a.before", "a.after:Accepted", "a.error"}, rec.calls)
}

func TestChain_HookFailuresDoNotStopOtherHooks(t *testing.T) {
	var calls []string
	failing := Hooks{
		Name:  "failing",
		After: func(*Exchange) error { calls = append(calls, "failing.after"); return errors.New("boom") },
		Error: func(*Exchange, error) error { calls = append(calls, "failing.error"); return errors.New("boom") },
	}
	healthy := Hooks{
		Name:  "healthy",
		After: func(*Exchange) error { calls = append(calls, "healthy.after"); return nil },
		Error: func(*Exchange, error) error { calls = append(calls, "healthy.error"); return nil },
	}

	w := serve(t, NewChain(failing, healthy), Handle(func(http.ResponseWriter, *http.Request) error {
		return app.RateLimit("slow down")
	}))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, []string{"failing.error", "healthy.error", "failing.after", "healthy.after"}, calls)
}

func TestChain_AfterHooksMaySetHeaders(t *testing.T) {
	chain := NewChain(Hooks{
		Name: "stamp",
		Before: func(ex *Exchange) error {
			ex.Set("stamp", "yes")
			return nil
		},
		After: func(ex *Exchange) error {
			ex.ResponseHeader.Set("X-Stamp", "after")
			return nil
		},
	})

	var seen any
	w := serve(t, chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex, ok := FromContext(r.Context())
		require.True(t, ok)
		seen, _ = ex.Get("stamp")
		_, _ = w.Write([]byte("body"))
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", seen)
	assert.Equal(t, "after", w.Header().Get("X-Stamp"))
}
