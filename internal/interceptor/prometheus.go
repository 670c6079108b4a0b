package interceptor

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "guardian"
	subsystem = "http"

	// unmatchedRoute labels requests that matched no route, keeping the
	// label set bounded.
	unmatchedRoute = "unmatched"
)

// PrometheusCollector keeps process-local request counters and latencies on
// a private registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	reqs *prometheus.CounterVec
	durs *prometheus.HistogramVec
}

func NewPrometheusCollector() *PrometheusCollector {
	reqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	durs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests until the response status was sent",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		reqs,
		durs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusCollector{registry: registry, reqs: reqs, durs: durs}
}

// Hooks observes every finalized response.
func (p *PrometheusCollector) Hooks() pipeline.Hooks {
	return pipeline.Hooks{
		Name: "prometheus",
		After: func(ex *pipeline.Exchange) error {
			route := routePattern(ex.Request)
			method := ex.Request.Method

			p.reqs.WithLabelValues(method, route, strconv.Itoa(ex.Status)).Inc()
			p.durs.WithLabelValues(method, route).Observe(ex.Elapsed().Seconds())
			return nil
		},
	}
}

// Handler serves the registry in the Prometheus text format.
func (p *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the private registry, mainly for tests.
func (p *PrometheusCollector) Registry() *prometheus.Registry {
	return p.registry
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
