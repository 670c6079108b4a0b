package interceptor

import (
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/MKhiriev/go-guardian/internal/service"
)

// metricsUnrecorded marks an exchange whose hit could not be counted.
const metricsUnrecorded = "metrics.unrecorded"

// Metrics feeds the per-endpoint aggregator keyed by method and request
// path. Metrics are advisory: a store failure is logged and the request
// proceeds. When the hit was not counted, completion and error are not
// counted either so the aggregate stays consistent.
func Metrics(metrics service.MetricsService) pipeline.Hooks {
	return pipeline.Hooks{
		Name: "metrics",
		Before: func(ex *pipeline.Exchange) error {
			r := ex.Request
			if err := metrics.RecordHit(r.Context(), r.Method, r.URL.Path); err != nil {
				logger.FromRequest(r).Warn().Err(err).
					Str("func", "interceptor.Metrics").
					Str("path", r.URL.Path).
					Msg("request hit not recorded")
				ex.Set(metricsUnrecorded, true)
			}
			return nil
		},
		After: func(ex *pipeline.Exchange) error {
			if unrecorded(ex) {
				return nil
			}
			r := ex.Request
			return metrics.RecordCompletion(r.Context(), r.Method, r.URL.Path, ex.Elapsed())
		},
		Error: func(ex *pipeline.Exchange, _ error) error {
			if unrecorded(ex) {
				return nil
			}
			r := ex.Request
			return metrics.RecordError(r.Context(), r.Method, r.URL.Path)
		},
	}
}

func unrecorded(ex *pipeline.Exchange) bool {
	v, ok := ex.Get(metricsUnrecorded)
	return ok && v.(bool)
}
