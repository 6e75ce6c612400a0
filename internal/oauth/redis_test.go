package oauth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStoreWithClient(client, ttl), mr
}

func TestRedisStoreCreateAndConsume(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t, 10*time.Minute)

	state, err := store.Create(ctx, "https://app.example.com")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	origin, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", origin)
}

func TestRedisStoreConsumeTwice(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t, 10*time.Minute)

	state, err := store.Create(ctx, "https://app.example.com")
	require.NoError(t, err)

	_, err = store.Consume(ctx, state)
	require.NoError(t, err)

	_, err = store.Consume(ctx, state)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStoreUnknownState(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t, 10*time.Minute)

	_, err := store.Consume(ctx, "never-created")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t, time.Minute)

	state, err := store.Create(ctx, "https://app.example.com")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Consume(ctx, state)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStoreEmptyOrigin(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t, 10*time.Minute)

	state, err := store.Create(ctx, "")
	require.NoError(t, err)

	origin, err := store.Consume(ctx, state)
	require.NoError(t, err)
	assert.Empty(t, origin)
}

func TestRedisStoreKeysCarryTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t, time.Minute)

	state, err := store.Create(ctx, "https://app.example.com")
	require.NoError(t, err)

	ttl := mr.TTL(stateKeyPrefix + state)
	assert.Equal(t, time.Minute, ttl)
}
