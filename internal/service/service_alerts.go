package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/models"
)

// alertService is an in-memory, append-only alert log. Once max alerts are
// held the oldest one is dropped.
type alertService struct {
	mu     sync.Mutex
	alerts []models.Alert
	max    int
	now    func() time.Time

	logger *logger.Logger
}

func NewAlertService(cfg config.Monitoring, logger *logger.Logger) AlertService {
	return &alertService{
		max:    cfg.MaxAlerts,
		now:    time.Now,
		logger: logger,
	}
}

func (s *alertService) Trigger(ctx context.Context, alertType, message string, severity models.Severity) models.Alert {
	alert := models.Alert{
		Type:      alertType,
		Message:   message,
		Severity:  severity,
		Timestamp: s.now().UTC(),
	}

	s.mu.Lock()
	s.alerts = append(s.alerts, alert)
	if s.max > 0 && len(s.alerts) > s.max {
		s.alerts = s.alerts[len(s.alerts)-s.max:]
	}
	s.mu.Unlock()

	logger.FromContext(ctx).Warn().
		Str("type", alertType).
		Str("severity", string(severity)).
		Str("message", message).
		Msg("alert triggered")

	return alert
}

// List returns a copy of the alerts, oldest first.
func (s *alertService) List(_ context.Context) []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
