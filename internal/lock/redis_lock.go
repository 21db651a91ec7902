// Package lock provides the advisory lock that serialises lead conversions.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayos/internal/config"
	"stayos/internal/domain"
	"stayos/internal/port"
)

// releaseScript deletes the key only if it still carries our token, so an
// expired lock that someone else re-acquired is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type redisLock struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisLock creates a ConversionLock backed by SET NX with a TTL.
func NewRedisLock(client *redis.Client, ttl time.Duration, logger *zap.Logger) port.ConversionLock {
	return &redisLock{client: client, ttl: ttl, logger: logger}
}

func (l *redisLock) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redisLock.Acquire: %w", err)
	}
	if !ok {
		return nil, domain.ErrConversionInProgress
	}
	return func() {
		// The caller's context may already be cancelled by the time we release.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("redisLock: release failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

type noopLock struct{}

// NewNoopLock returns a ConversionLock that always succeeds. Used when Redis is not configured.
func NewNoopLock() port.ConversionLock {
	return noopLock{}
}

func (noopLock) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
