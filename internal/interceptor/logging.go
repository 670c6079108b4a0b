package interceptor

import (
	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/rs/zerolog"
)

// Logging logs the incoming request, the final response and any failure.
// Operational failures are logged at warn, unclassified ones at error.
// Request bodies are never logged.
func Logging() pipeline.Hooks {
	return pipeline.Hooks{
		Name: "logging",
		Before: func(ex *pipeline.Exchange) error {
			r := ex.Request
			logger.FromRequest(r).Info().
				Str("type", "request").
				Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Str("user_agent", r.UserAgent()).
				Str("content_type", r.Header.Get("Content-Type")).
				Msg("incoming request")
			return nil
		},
		After: func(ex *pipeline.Exchange) error {
			r := ex.Request
			logger.FromRequest(r).Info().
				Str("type", "response").
				Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Int("status", ex.Status).
				Dur("duration", ex.Elapsed()).
				Msg("request completed")
			return nil
		},
		Error: func(ex *pipeline.Exchange, err error) error {
			r := ex.Request
			level := zerolog.ErrorLevel
			if _, ok := app.AsError(err); ok {
				level = zerolog.WarnLevel
			}
			logger.FromRequest(r).WithLevel(level).
				Err(err).
				Str("type", "error").
				Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Msg("request failed")
			return nil
		},
	}
}
