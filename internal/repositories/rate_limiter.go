package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/quickcart/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter bounds login attempts per email over a sliding window.
type LoginRateLimiter interface {
	// Check returns whether the attempt is allowed, attempts remaining, and
	// seconds to wait when blocked.
	Check(ctx context.Context, email string) (bool, int, int, error)
}

type redisRateLimiter struct {
	client *redis.Client
	cfg    *config.RateConfig
}

func NewLoginRateLimiter(client *redis.Client, cfg *config.RateConfig) LoginRateLimiter {
	return &redisRateLimiter{client: client, cfg: cfg}
}

func (r *redisRateLimiter) Check(ctx context.Context, email string) (bool, int, int, error) {

	key := fmt.Sprintf("login_attempts:%s", email)

	now := time.Now().Unix()
	windowStart := now - int64(r.cfg.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()
	remaining := r.cfg.MaxAttempts - attempts

	if attempts >= r.cfg.MaxAttempts {
		oldest, err := r.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, 0, err
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, 0, 0, err
		}

		retryAfter := int64(r.cfg.WindowSize.Seconds()) - (now - oldestTime)

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil
}
