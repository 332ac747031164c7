// Package turnlock serializes conversation turns per user. RedisLocker is
// shared by every instance of the service; LocalLocker only covers the
// current process.
package turnlock

import (
	"context"
	"log/slog"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "turn:"

	DefaultLockTTL    = 30 * time.Second
	DefaultRetryDelay = 50 * time.Millisecond

	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another turn is left alone.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

var _ ports.TurnLocker = (*RedisLocker)(nil)

// RedisLocker serializes a user's turns across service instances. Each lock is
// a key holding a random token, so only the holder can release it.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewRedisLocker returns a locker whose locks expire after ttl if the holder
// never releases them. Zero durations fall back to the defaults.
func NewRedisLocker(client *redis.Client, ttl, retryDelay time.Duration, logger *slog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: retryDelay,
		logger:     logger.With("component", "turn-lock"),
	}
}

// Lock retries every retryDelay until the key is free or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, userID kernel.UUID) (func(), error) {
	key := keyPrefix + userID.String()
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryDelay)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.Warn("failed to release turn lock", "key", key, "error", err)
	}
}
