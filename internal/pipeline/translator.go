package pipeline

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
)

const statusError = "error"

type mappedError struct {
	status  int
	message string
}

// errorStatusMap classifies sentinel errors that reach the translator
// without having been turned into an *app.Error by a service.
var errorStatusMap = map[error]mappedError{
	store.ErrUserNotFound:       {http.StatusNotFound, "User not found"},
	store.ErrEmailAlreadyExists: {http.StatusBadRequest, app.MsgEmailAlreadyExists},
	utils.ErrEmptyBody:          {http.StatusBadRequest, app.MsgInvalidDataProvided},
}

// classify returns the status and client-safe message for err. operational
// is false for errors whose text must not reach the client.
func classify(err error) (status int, message string, operational bool) {
	if appErr, ok := app.AsError(err); ok {
		return appErr.StatusCode(), appErr.Message, true
	}
	for target, mapped := range errorStatusMap {
		if errors.Is(err, target) {
			return mapped.status, mapped.message, true
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError, false
}

// Translate writes err as {"status":"error","message":...}. Operational
// errors keep their status and message and are logged at warn level with
// the construction stack; everything else becomes a generic 500 logged at
// error level. When the response was already sent only the log is written.
func Translate(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, message, operational := classify(err)

	if operational {
		event := log.Warn().Err(err).Int("status", status).Str("method", r.Method).Str("path", r.URL.Path)
		if appErr, ok := app.AsError(err); ok {
			event = event.Str("kind", appErr.Kind.String()).Str("stack", appErr.Stack())
		}
		event.Msg("request failed")
	} else {
		log.Error().Err(err).
			Int("status", status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("stack", string(debug.Stack())).
			Msg("unhandled error")
	}

	if IsCommitted(w) {
		log.Warn().Str("func", "Translate").Int("status", status).Msg("response already sent, error response dropped")
		return
	}

	// a partially built success response must not leak into the error body
	w.Header().Del("Content-Encoding")
	w.Header().Del("Content-Length")

	if _, writeErr := utils.WriteJSON(w, models.ErrorResponse{Status: statusError, Message: message}, status); writeErr != nil {
		log.Err(writeErr).Str("func", "Translate").Msg("error writing error response")
	}
}
