package http

import (
	"net/http"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/interceptor"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Middleware order is request order: tracking wraps
// everything so every log line and error response carries the request ids,
// the interceptor chain comes next so it observes every failure below it.
//
// The health and Prometheus endpoints sit outside the global rate limit so
// they keep answering while the counter store is unavailable.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(h.withTracking)
	router.Use(h.interceptors().Middleware)
	if h.cfg.Server.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(withSecurityHeaders)
	router.Use(h.withCORS)
	router.Use(withGZip)

	router.Method(http.MethodGet, "/health", pipeline.Handle(h.health))
	router.Method(http.MethodGet, "/monitoring/prometheus", h.prometheus.Handler())

	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit(h.globalPolicy()))

		r.Method(http.MethodGet, "/", pipeline.Handle(h.root))

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Use(h.withRateLimit(h.authPolicy()))

				r.Method(http.MethodPost, "/register", pipeline.Handle(h.register))
				r.Method(http.MethodPost, "/login", pipeline.Handle(h.login))
				r.Method(http.MethodPost, "/refresh", pipeline.Handle(h.refresh))
				r.With(pipeline.Guard(h.authenticate)).
					Method(http.MethodPost, "/logout", pipeline.Handle(h.logout))
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(h.withRateLimit(h.apiPolicy()))
				r.Use(pipeline.Guard(h.authenticate))

				r.With(pipeline.Guard(requireRoles(models.RoleAdmin))).
					Method(http.MethodGet, "/", pipeline.Handle(h.listUsers))
				r.Method(http.MethodGet, "/{id}", pipeline.Handle(h.getUser))
				r.Method(http.MethodPatch, "/{id}", pipeline.Handle(h.updateUser))
				r.With(pipeline.Guard(requireRoles(models.RoleAdmin))).
					Method(http.MethodDelete, "/{id}", pipeline.Handle(h.deleteUser))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(pipeline.Guard(h.authenticate))
			r.Use(pipeline.Guard(requireRoles(models.RoleAdmin)))

			r.Method(http.MethodGet, "/metrics", pipeline.Handle(h.metrics))
			r.Method(http.MethodGet, "/monitoring/alerts", pipeline.Handle(h.alerts))
		})
	})

	// unmatched requests still count against the global limit
	notFound := h.withRateLimit(h.globalPolicy())(http.HandlerFunc(routeNotFound))
	router.NotFound(notFound.ServeHTTP)
	router.MethodNotAllowed(notFound.ServeHTTP)

	return router
}

// interceptors returns the registered hooks in execution order.
func (h *Handler) interceptors() *pipeline.Chain {
	return pipeline.NewChain(
		interceptor.Logging(),
		interceptor.Performance(h.services.AlertService, h.cfg.Monitoring.SlowRequestThreshold),
		interceptor.Metrics(h.services.MetricsService),
		h.prometheus.Hooks(),
	)
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	pipeline.Fail(w, r, app.NotFound("Route"))
}
