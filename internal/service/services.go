package service

import (
	"fmt"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/models"
)

type Services struct {
	TokenService     TokenService
	AuthService      AuthService
	UserService      UserService
	RateLimitService RateLimitService
	MetricsService   MetricsService
	AlertService     AlertService
	HealthService    HealthService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	tokens := NewTokenService(storages.CounterStore, cfg.App, logger)

	return &Services{
		TokenService:     tokens,
		AuthService:      NewAuthService(storages.UserRepository, tokens, cfg.App, logger),
		UserService:      NewUserService(storages.UserRepository, logger),
		RateLimitService: NewRateLimitService(storages.CounterStore, logger),
		MetricsService:   NewMetricsService(storages.CounterStore, cfg.Monitoring, logger),
		AlertService:     NewAlertService(cfg.Monitoring, logger),
		HealthService:    NewHealthService(storages.UserRepository, storages.CounterStore, cfg.App, logger),
		AppInfoService:   appInfo,
	}, nil
}
