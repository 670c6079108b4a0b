package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
)

// Storages bundles every persistence backend the services depend on.
type Storages struct {
	DB             *DB
	UserRepository UserRepository
	CounterStore   CounterStore
}

// NewStorages connects the user database (running migrations) and the
// counter store described by cfg.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	counters, err := NewCounterStore(ctx, cfg.Cache.URL, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
		CounterStore:   counters,
	}, nil
}

// NewCounterStore returns a Redis store for redis:// and rediss:// URLs and
// a process-local store for "memory".
func NewCounterStore(ctx context.Context, url string, log *logger.Logger) (CounterStore, error) {
	switch {
	case url == config.MemoryCacheURL:
		log.Warn().Str("func", "NewCounterStore").Msg("using process-local counter store, limits are not shared between instances")
		return NewMemoryStore(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisStore(ctx, url, log)
	default:
		return nil, ErrUnsupportedCacheURL
	}
}

// Close releases both backends.
func (s *Storages) Close() error {
	var errs []error
	if s.CounterStore != nil {
		errs = append(errs, s.CounterStore.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
