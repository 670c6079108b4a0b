package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-guardian/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// CounterStore is the shared key/value store holding rate-limit windows,
// revoked tokens and endpoint metrics. Every method is safe for concurrent
// use by many goroutines and many server instances.
type CounterStore interface {
	// Increment atomically adds one to the counter at key, starting a window
	// of the given length when the key is new (or has lost its expiry).
	// It returns the post-increment count and the time left in the window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)

	// Get returns the value at key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// SetWithTTL stores value at key, replacing any previous value and expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Scan returns every live key matching a glob pattern such as
	// "metrics:*". Order is unspecified.
	Scan(ctx context.Context, pattern string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
