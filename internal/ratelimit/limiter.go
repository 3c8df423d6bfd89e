// Package ratelimit bounds the number of requests a gateway account may make
// per time window.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter configuration.
type Config struct {
	Value     int    `envconfig:"RATE_LIMITER_VALUE" default:"100"`
	ValuePost int    `envconfig:"RATE_LIMITER_VALUE_POST" default:"15"`
	PerMillis int    `envconfig:"RATE_LIMITER_PER_MILLIS" default:"1000"`
	RedisURL  string `envconfig:"REDIS_URL"`
}

// Window is the length of one counting window.
func (c Config) Window() time.Duration {
	return time.Duration(c.PerMillis) * time.Millisecond
}

// Validate rejects limits and windows that could never admit a request or
// would leave the window length at zero.
func (c Config) Validate() error {
	if c.Value <= 0 {
		return fmt.Errorf("RATE_LIMITER_VALUE must be positive, got %d", c.Value)
	}
	if c.ValuePost <= 0 {
		return fmt.Errorf("RATE_LIMITER_VALUE_POST must be positive, got %d", c.ValuePost)
	}
	if c.PerMillis <= 0 {
		return fmt.Errorf("RATE_LIMITER_PER_MILLIS must be positive, got %d", c.PerMillis)
	}
	return nil
}

// Limiter counts requests for a key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) (bool, error)
}

// LocalLimiter counts in process memory.
type LocalLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	current  int64
	counters map[string]int
	now      func() time.Time
}

// NewLocalLimiter creates an in-process limiter.
func NewLocalLimiter(window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		window:   window,
		counters: make(map[string]int),
		now:      time.Now,
	}
}

// Allow implements Limiter.
func (l *LocalLimiter) Allow(_ context.Context, key string, limit int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.now().UnixNano() / int64(l.window)
	if idx != l.current {
		l.current = idx
		l.counters = make(map[string]int)
	}
	l.counters[key]++
	return l.counters[key] <= limit, nil
}

// RedisLimiter shares counters between gateway instances through Redis.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	now    func() time.Time
}

// NewRedisClient connects to the Redis server at url.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewRedisLimiter creates a limiter on client.
func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, now: time.Now}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	idx := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("publicapi:ratelimit:%s:%d", key, idx)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("expiring rate limit counter: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// HealthCheck pings Redis.
func (l *RedisLimiter) HealthCheck(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// FallbackLimiter uses primary and falls back to secondary when primary fails.
type FallbackLimiter struct {
	primary   Limiter
	secondary Limiter
	logger    *slog.Logger
}

// NewFallbackLimiter creates a limiter that degrades to secondary.
func NewFallbackLimiter(primary, secondary Limiter, logger *slog.Logger) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, secondary: secondary, logger: logger}
}

// Allow implements Limiter.
func (l *FallbackLimiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	allowed, err := l.primary.Allow(ctx, key, limit)
	if err == nil {
		return allowed, nil
	}
	l.logger.Warn("rate limiter unavailable, using local limiter", "error", err)
	return l.secondary.Allow(ctx, key, limit)
}
