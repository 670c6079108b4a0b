package interceptor

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/models"
)

// AlertSlowRequest is the alert type raised for requests slower than the
// configured threshold.
const AlertSlowRequest = "slow-request"

// Performance raises a low severity slow-request alert when a single request
// takes longer than threshold. It never aborts the request.
func Performance(alerts service.AlertService, threshold time.Duration) pipeline.Hooks {
	return pipeline.Hooks{
		Name: "performance",
		After: func(ex *pipeline.Exchange) error {
			elapsed := ex.Elapsed()
			if elapsed <= threshold {
				return nil
			}

			r := ex.Request
			logger.FromRequest(r).Warn().
				Str("type", "slow-api").
				Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Dur("duration", elapsed).
				Msg("slow request")

			alerts.Trigger(r.Context(), AlertSlowRequest,
				fmt.Sprintf("Slow request: %s %s took %dms", r.Method, r.URL.Path, elapsed.Milliseconds()),
				models.SeverityLow)
			return nil
		},
	}
}
