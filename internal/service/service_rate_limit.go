package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/models"
)

const rateLimitPrefix = "ratelimit:"

// rateLimitService implements a fixed window per (policy, client). The count
// lives only in the counter store, whose Increment is atomic, so every
// instance sharing the store enforces the same budget.
type rateLimitService struct {
	counters store.CounterStore

	logger *logger.Logger
}

func NewRateLimitService(counters store.CounterStore, logger *logger.Logger) RateLimitService {
	return &rateLimitService{counters: counters, logger: logger}
}

// Take counts one request of client against policy. Allowed is false once
// the post-increment count exceeds policy.Max. Store errors are returned
// as-is and the caller must not admit the request.
func (s *rateLimitService) Take(ctx context.Context, policy models.RateLimitPolicy, client string) (models.RateDecision, error) {
	key := rateLimitPrefix + policy.Name + ":" + client

	count, ttl, err := s.counters.Increment(ctx, key, policy.Window)
	if err != nil {
		return models.RateDecision{}, fmt.Errorf("error counting request for %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = policy.Window
	}

	remaining := policy.Max - count
	if remaining < 0 {
		remaining = 0
	}

	return models.RateDecision{
		Key:        key,
		Count:      count,
		Limit:      policy.Max,
		Remaining:  remaining,
		ResetAfter: ttl,
		Allowed:    count <= policy.Max,
	}, nil
}
