package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/models"
)

const (
	healthOK    = "OK"
	healthError = "ERROR"

	pingTimeout = 2 * time.Second
)

// Pinger is a dependency whose reachability is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	database Pinger
	counters Pinger

	environment string
	startedAt   time.Time
	now         func() time.Time

	logger *logger.Logger
}

func NewHealthService(database, counters Pinger, cfg config.App, logger *logger.Logger) HealthService {
	return &healthService{
		database:    database,
		counters:    counters,
		environment: cfg.Environment,
		startedAt:   time.Now(),
		now:         time.Now,
		logger:      logger,
	}
}

// Check pings every dependency. Status is "ERROR" when any of them is down.
func (s *healthService) Check(ctx context.Context) models.HealthReport {
	now := s.now()
	report := models.HealthReport{
		Uptime:    now.Sub(s.startedAt).Seconds(),
		Status:    healthOK,
		Timestamp: now.UnixMilli(),
		Services: map[string]string{
			"database": s.ping(ctx, "database", s.database),
			"redis":    s.ping(ctx, "redis", s.counters),
			"api":      healthOK,
		},
		Environment: s.environment,
	}

	for _, status := range report.Services {
		if status != healthOK {
			report.Status = healthError
			break
		}
	}
	return report
}

func (s *healthService) ping(ctx context.Context, name string, dep Pinger) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := dep.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("service", name).Msg("health check failed")
		return healthError
	}
	return healthOK
}
