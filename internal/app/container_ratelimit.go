package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/http/middleware/ratelimit"
	"delivery-coordinator/internal/logx"
)

const loginScope = "login"

// newRedisClient returns nil unless the redis limiter backend is selected.
func newRedisClient(cfg *config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Backend != config.RateLimitBackendRedis {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		DialTimeout:  time.Second,
		ReadTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
	})
}

type limiterIn struct {
	dig.In

	Config *config.Config
	Clock  ratelimit.Clock
	Redis  *redis.Client
	Logger logx.Logger
}

func newRateLimiter(in limiterIn) ratelimit.Limiter {
	rl := in.Config.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	if rl.Backend == config.RateLimitBackendRedis && in.Redis != nil {
		return ratelimit.NewRedisLimiter(in.Redis, in.Clock, ratelimit.RedisConfig{
			Limit:  rl.Burst,
			Window: burstWindow(rl.Rate, rl.Burst),
		}, in.Logger)
	}
	return ratelimit.NewTokenBucketLimiter(in.Clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

// burstWindow is the time the token bucket needs to refill burst tokens,
// so both backends admit roughly the same number of logins.
func burstWindow(rate float64, burst int) time.Duration {
	if rate <= 0 || burst <= 0 {
		return time.Second
	}
	return time.Duration(float64(burst) / rate * float64(time.Second))
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter, loginScope)
}
