package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

func TestNewClient_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(context.Background()))
	assert.Equal(t, "redis", client.Name())
	assert.Equal(t, config.DefaultRedisKeyPrefix, client.KeyPrefix())
}

func TestNewClient_ConnectionFailed(t *testing.T) {
	client, err := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"}, logging.NewNopLogger())
	assert.Nil(t, client)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func TestCache_AgainstMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "dd:"}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	cache := NewCache(client, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:asp", []byte("x"), 0))
	require.NoError(t, cache.Set(ctx, "detail:aspirin", []byte("y"), 0))
	assert.True(t, mr.Exists("dd:search:asp"))

	data, ok, err := cache.Get(ctx, "search:asp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(data))

	n, err := cache.DeleteByPrefix(ctx, "search:")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, err = cache.Get(ctx, "search:asp")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("dd:detail:aspirin"))
}

func TestClient_Close(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())

	err = client.Get(context.Background(), "foo").Err()
	assert.Equal(t, ErrClientClosed, err)
	assert.Equal(t, ErrClientClosed, client.Ping(context.Background()))
}

//Personal.AI order the ending
