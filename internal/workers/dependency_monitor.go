// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Alert types raised by DependencyMonitor.
const (
	AlertDependencyDown      = "dependency-down"
	AlertDependencyRecovered = "dependency-recovered"
)

const healthOK = "OK"

// DependencyMonitor periodically runs the health check and raises an alert
// whenever a dependency goes down or comes back.
type DependencyMonitor struct {
	health   service.HealthService
	alerts   service.AlertService
	interval time.Duration

	up *prometheus.GaugeVec

	// down holds the dependencies reported down by the previous probe.
	down map[string]bool

	logger *logger.Logger
}

// NewDependencyMonitor registers the guardian_dependency_up gauge on
// registerer and returns a monitor probing every interval. A non-positive
// interval makes Run return immediately.
func NewDependencyMonitor(
	health service.HealthService,
	alerts service.AlertService,
	interval time.Duration,
	registerer prometheus.Registerer,
	logger *logger.Logger,
) (*DependencyMonitor, error) {
	up := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "guardian",
		Name:      "dependency_up",
		Help:      "Whether a dependency answered the last health probe (1) or not (0).",
	}, []string{"service"})
	if err := registerer.Register(up); err != nil {
		return nil, fmt.Errorf("error registering dependency gauge: %w", err)
	}

	return &DependencyMonitor{
		health:   health,
		alerts:   alerts,
		interval: interval,
		up:       up,
		down:     make(map[string]bool),
		logger:   logger,
	}, nil
}

func (m *DependencyMonitor) Run(ctx context.Context) error {
	if m.interval <= 0 {
		m.logger.Info().Str("func", "DependencyMonitor.Run").Msg("dependency monitor disabled")
		return nil
	}

	m.logger.Info().Str("func", "DependencyMonitor.Run").Dur("interval", m.interval).Msg("dependency monitor started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Str("func", "DependencyMonitor.Run").Msg("dependency monitor stopped")
			return nil
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// probe runs one health check and reacts to status changes.
func (m *DependencyMonitor) probe(ctx context.Context) {
	report := m.health.Check(ctx)

	for _, name := range slices.Sorted(maps.Keys(report.Services)) {
		isUp := report.Services[name] == healthOK
		if isUp {
			m.up.WithLabelValues(name).Set(1)
		} else {
			m.up.WithLabelValues(name).Set(0)
		}

		switch {
		case !isUp && !m.down[name]:
			m.down[name] = true
			m.logger.Warn().Str("service", name).Msg("dependency is down")
			m.alerts.Trigger(ctx, AlertDependencyDown, fmt.Sprintf("Dependency %s is down", name), models.SeverityHigh)
		case isUp && m.down[name]:
			delete(m.down, name)
			m.logger.Info().Str("service", name).Msg("dependency recovered")
			m.alerts.Trigger(ctx, AlertDependencyRecovered, fmt.Sprintf("Dependency %s recovered", name), models.SeverityLow)
		}
	}
}
