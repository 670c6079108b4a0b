package http

import (
	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/interceptor"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/models"
)

type Handler struct {
	services *service.Services
	cfg      config.StructuredConfig

	prometheus *interceptor.PrometheusCollector
	idGen      idGenerator

	logger *logger.Logger
}

type idGenerator interface {
	Generate() string
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, prometheus *interceptor.PrometheusCollector, idGen idGenerator, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		cfg:        cfg,
		prometheus: prometheus,
		idGen:      idGen,
		logger:     logger,
	}
}

func (h *Handler) globalPolicy() models.RateLimitPolicy {
	return models.RateLimitPolicy{Name: "global", Window: h.cfg.RateLimit.GlobalWindow, Max: h.cfg.RateLimit.GlobalMax}
}

func (h *Handler) authPolicy() models.RateLimitPolicy {
	return models.RateLimitPolicy{Name: "auth", Window: h.cfg.RateLimit.AuthWindow, Max: h.cfg.RateLimit.AuthMax}
}

func (h *Handler) apiPolicy() models.RateLimitPolicy {
	return models.RateLimitPolicy{Name: "api", Window: h.cfg.RateLimit.APIWindow, Max: h.cfg.RateLimit.APIMax}
}
