package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultSetTimeout = 5 * time.Second

// addTTLJitter adds up to ±30s random jitter to TTL to avoid mass expiration.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := time.Duration(rand.Intn(30)-15) * time.Second
	return ttl + jitter
}

// fetchCached implements read-through caching with singleflight collapsing.
// The source snapshots are immutable for a cache generation, so there is no
// refresh-ahead: an entry simply expires and is recomputed. With a nil
// Cacher the fetch runs directly, still singleflight-collapsed.
func fetchCached[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	if c != nil {
		var cached T
		err := c.Get(ctx, key, &cached)
		switch {
		case err == nil:
			logger.Debug("cache hit", zap.String("key", key))
			return cached, nil
		case errors.Is(err, redis.Nil):
			logger.Debug("cache miss", zap.String("key", key))
		default:
			logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		if c != nil {
			setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
			defer cancel()
			if err := c.Set(setCtx, key, value, addTTLJitter(ttl)); err != nil {
				logger.Warn("failed to set cache", zap.String("key", key), zap.Error(err))
			}
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
