// Package ratelimit throttles the unauthenticated auth endpoints per client.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"yamdb/internal/config"
)

// Limiter decides whether the caller identified by key may proceed.
// When it may not, retryAfter says how long to wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// New builds the limiter described by cfg. It returns a nil Limiter when
// throttling is disabled; the returned close func is always safe to call.
func New(cfg *config.Config) (Limiter, func() error, error) {
	noop := func() error { return nil }
	if cfg.AuthRateLimit <= 0 {
		return nil, noop, nil
	}
	if cfg.RedisURL == "" {
		return NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow), noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	client := redis.NewClient(opts)
	return NewRedisLimiter(client, "yamdb:auth", cfg.AuthRateLimit, cfg.AuthRateWindow), client.Close, nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps a token bucket per key in process memory.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	every  rate.Limit

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewMemoryLimiter allows limit requests per window per key, refilling evenly.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		window:   window,
		every:    rate.Every(window / time.Duration(limit)),
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.cleanupLocked(now)
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// cleanupLocked drops buckets idle long enough to be full again.
func (l *MemoryLimiter) cleanupLocked(now time.Time) {
	cutoff := now.Add(-2 * l.window)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := l.prefix + ":" + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		// NX keeps the first request's expiry so the window does not slide
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}

	if incr.Val() <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}
