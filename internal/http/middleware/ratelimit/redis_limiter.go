package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"delivery-coordinator/internal/logx"
)

const redisKeyPrefix = "ratelimit:"

// RedisConfig configures RedisLimiter: at most Limit requests per Window.
type RedisConfig struct {
	Limit   int
	Window  time.Duration
	Timeout time.Duration
}

// RedisLimiter is a fixed-window counter shared by every replica.
// A Redis failure lets the request through.
type RedisLimiter struct {
	client redis.Cmdable
	cfg    RedisConfig
	clock  Clock
	logger logx.Logger
}

// NewRedisLimiter creates a RedisLimiter.
func NewRedisLimiter(client redis.Cmdable, clock Clock, cfg RedisConfig, logger logx.Logger) *RedisLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 200 * time.Millisecond
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RedisLimiter{client: client, cfg: cfg, clock: clock, logger: logger}
}

// Allow increments the key's counter for the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	window := l.clock.Now().UnixNano() / int64(l.cfg.Window)
	k := redisKeyPrefix + key + ":" + strconv.FormatInt(window, 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, l.cfg.Window)
		return nil
	})
	if err != nil {
		l.logger.Warn("redis rate limiter unavailable, allowing", logx.String("key", key), logx.Err(err))
		return true
	}
	return incr.Val() <= int64(l.cfg.Limit)
}
