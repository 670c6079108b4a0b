package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/models"
)

const metricsPrefix = "metrics:"

// metricsService keeps one JSON EndpointMetrics document per
// "metrics:<METHOD>:<path>" key. Every write refreshes the key's TTL.
type metricsService struct {
	counters store.CounterStore
	ttl      time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewMetricsService(counters store.CounterStore, cfg config.Monitoring, logger *logger.Logger) MetricsService {
	return &metricsService{
		counters: counters,
		ttl:      cfg.MetricsTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func metricsKey(method, path string) string {
	return metricsPrefix + method + ":" + path
}

func (s *metricsService) RecordHit(ctx context.Context, method, path string) error {
	return s.update(ctx, metricsKey(method, path), func(m *models.EndpointMetrics) {
		m.Hits++
	})
}

// RecordCompletion adds duration to the endpoint total and recomputes the
// average over the recorded hits.
func (s *metricsService) RecordCompletion(ctx context.Context, method, path string, duration time.Duration) error {
	return s.update(ctx, metricsKey(method, path), func(m *models.EndpointMetrics) {
		m.TotalDuration += duration.Milliseconds()
		if m.Hits > 0 {
			m.AvgDuration = float64(m.TotalDuration) / float64(m.Hits)
		}
		m.LastAccessed = s.now().UnixMilli()
	})
}

func (s *metricsService) RecordError(ctx context.Context, method, path string) error {
	return s.update(ctx, metricsKey(method, path), func(m *models.EndpointMetrics) {
		m.Errors++
	})
}

// List scans every metrics key. Keys expiring between the scan and the read
// are skipped. The result is ordered by endpoint.
func (s *metricsService) List(ctx context.Context) ([]models.EndpointMetricsView, error) {
	keys, err := s.counters.Scan(ctx, metricsPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("error scanning metrics: %w", err)
	}

	views := make([]models.EndpointMetricsView, 0, len(keys))
	for _, key := range keys {
		m, found, err := s.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		views = append(views, models.EndpointMetricsView{
			Endpoint:        strings.TrimPrefix(key, metricsPrefix),
			EndpointMetrics: m,
		})
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Endpoint < views[j].Endpoint })
	return views, nil
}

func (s *metricsService) update(ctx context.Context, key string, apply func(m *models.EndpointMetrics)) error {
	m, found, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		m = models.EndpointMetrics{LastAccessed: s.now().UnixMilli()}
	}

	apply(&m)

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error encoding metrics %s: %w", key, err)
	}

	if err = s.counters.SetWithTTL(ctx, key, string(data), s.ttl); err != nil {
		return fmt.Errorf("error saving metrics %s: %w", key, err)
	}
	return nil
}

func (s *metricsService) load(ctx context.Context, key string) (models.EndpointMetrics, bool, error) {
	raw, err := s.counters.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return models.EndpointMetrics{}, false, nil
	}
	if err != nil {
		return models.EndpointMetrics{}, false, fmt.Errorf("error reading metrics %s: %w", key, err)
	}

	var m models.EndpointMetrics
	if err = json.Unmarshal([]byte(raw), &m); err != nil {
		// a corrupt document is replaced on the next write
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable metrics document")
		return models.EndpointMetrics{}, false, nil
	}
	return m, true, nil
}
