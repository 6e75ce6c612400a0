package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default timeouts for redis operations.
const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// stateKeyPrefix namespaces login state keys in a shared redis.
const stateKeyPrefix = "botapi:login:state:"

// RedisStore keeps pending login state in redis so a login started on one
// instance can complete its callback on another.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisOptions holds connection settings for NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient creates a RedisStore with a pre-configured client.
// This is useful for testing with miniredis.
func NewRedisStoreWithClient(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create stores nextOrigin under a fresh token with the configured TTL.
// Redis reclaims expired entries itself.
func (s *RedisStore) Create(ctx context.Context, nextOrigin string) (string, error) {
	state, err := GenerateStateToken()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, stateKeyPrefix+state, nextOrigin, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store login state: %w", err)
	}
	return state, nil
}

// Consume removes and returns the entry for state. GETDEL makes the lookup
// and invalidation a single step, so concurrent callbacks presenting the
// same token cannot both succeed.
func (s *RedisStore) Consume(ctx context.Context, state string) (string, error) {
	val, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume login state: %w", err)
	}
	return val, nil
}

// Close closes the redis client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
