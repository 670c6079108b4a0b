package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-guardian/internal/logger"
)

// incrementScript counts one hit and starts the window on the first hit, or
// when a previous PEXPIRE was lost. Returns {count, pttl}.
var incrementScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if current == 1 or ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

const scanBatchSize = 100

// RedisStore is the [CounterStore] shared by every server instance.
type RedisStore struct {
	client redis.UniversalClient
	logger *logger.Logger
}

// NewRedisStore connects to the Redis server at url ("redis://" or
// "rediss://") and pings it.
func NewRedisStore(ctx context.Context, url string, log *logger.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedCacheURL, err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisStore").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisStore").Str("addr", opts.Addr).Msg("connected to redis successfully")

	return NewRedisStoreFromClient(client, log), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, log *logger.Logger) *RedisStore {
	return &RedisStore{client: client, logger: log}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := incrementScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("error incrementing %q: %w", key, err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("error incrementing %q: unexpected script reply %v", key, res)
	}

	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error getting %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("error setting %q: %w", key, err)
	}
	return nil
}

// Scan walks the keyspace with SCAN so large keyspaces never block the server.
func (s *RedisStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning %q: %w", pattern, err)
	}
	return keys, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
