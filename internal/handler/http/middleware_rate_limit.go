package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
)

const (
	headerRateLimitLimit     = "RateLimit-Limit"
	headerRateLimitRemaining = "RateLimit-Remaining"
	headerRateLimitReset     = "RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// withRateLimit counts the request against policy, keyed by client address.
// A store failure rejects the request.
func (h *Handler) withRateLimit(policy models.RateLimitPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := h.services.RateLimitService.Take(r.Context(), policy, utils.ClientIP(r))
			if err != nil {
				pipeline.Fail(w, r, fmt.Errorf("rate limiter %q: %w", policy.Name, err))
				return
			}

			header := w.Header()
			reset := strconv.FormatInt(ceilSeconds(decision.ResetAfter), 10)
			header.Set(headerRateLimitLimit, strconv.FormatInt(decision.Limit, 10))
			header.Set(headerRateLimitRemaining, strconv.FormatInt(decision.Remaining, 10))
			header.Set(headerRateLimitReset, reset)

			if !decision.Allowed {
				header.Set(headerRetryAfter, reset)
				pipeline.Fail(w, r, app.RateLimit(app.MsgTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}
