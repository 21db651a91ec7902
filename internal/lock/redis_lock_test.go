package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stayos/internal/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisLock_SecondAcquireBlocked(t *testing.T) {
	_, client := setupTestRedis(t)
	l := NewRedisLock(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	release, err := l.Acquire(ctx, "stayos:convert:t:l")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "stayos:convert:t:l")
	assert.ErrorIs(t, err, domain.ErrConversionInProgress)

	release()

	release2, err := l.Acquire(ctx, "stayos:convert:t:l")
	require.NoError(t, err)
	release2()
}

func TestRedisLock_ExpiresAfterTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	l := NewRedisLock(client, 5*time.Second, zap.NewNop())
	ctx := context.Background()

	_, err := l.Acquire(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)

	_, err = l.Acquire(ctx, "k")
	assert.NoError(t, err)
}

func TestRedisLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, client := setupTestRedis(t)
	l := NewRedisLock(client, 5*time.Second, zap.NewNop())
	ctx := context.Background()

	staleRelease, err := l.Acquire(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(6 * time.Second)

	_, err = l.Acquire(ctx, "k")
	require.NoError(t, err)

	staleRelease()
	assert.True(t, mr.Exists("k"))
}

func TestRedisLock_BackendDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	l := NewRedisLock(client, time.Minute, zap.NewNop())
	mr.Close()

	_, err := l.Acquire(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConversionInProgress)
}

func TestNoopLock(t *testing.T) {
	l := NewNoopLock()
	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
	_, err = l.Acquire(context.Background(), "k")
	assert.NoError(t, err)
}
