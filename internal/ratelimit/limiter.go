package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/mkovacevic/github-profile-analyzer/internal/monitoring"
)

// Config holds rate limiter configuration
type Config struct {
	// RequestsPerMinute allowed per client IP
	RequestsPerMinute int
	// Burst allowed above the steady rate for the in-memory fallback
	Burst int
}

// DefaultConfig returns the default limits
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 30,
		Burst:             10,
	}
}

// Limiter enforces per-IP request limits. It prefers a Redis sliding
// window so limits hold across replicas, and degrades to per-IP token
// buckets in memory when Redis is unavailable.
type Limiter struct {
	cfg     Config
	redis   *RedisClient
	window  *redis_rate.Limiter
	metrics *monitoring.Metrics

	mu       sync.Mutex
	fallback map[string]*rate.Limiter
}

// NewLimiter creates a limiter backed by the given Redis client.
func NewLimiter(cfg Config, redisClient *RedisClient, metrics *monitoring.Metrics) *Limiter {
	l := &Limiter{
		cfg:      cfg,
		redis:    redisClient,
		metrics:  metrics,
		fallback: make(map[string]*rate.Limiter),
	}
	if redisClient != nil && redisClient.IsEnabled() {
		l.window = redis_rate.NewLimiter(redisClient.GetClient())
	}
	return l
}

// AllowIP reports whether the given client IP may make another request.
func (l *Limiter) AllowIP(ctx context.Context, ip string) bool {
	if l.window != nil {
		allowed, err := l.allowRedis(ctx, ip)
		if err == nil {
			return allowed
		}
		slog.Warn("Redis rate limit check failed, using fallback", "ip", ip, "error", err)
		if l.metrics != nil {
			l.metrics.IncrementRateLimitRedisError()
		}
	}
	return l.allowFallback(ip)
}

func (l *Limiter) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:ip:%s", ip)
	res, err := l.window.Allow(ctx, key, redis_rate.PerMinute(l.cfg.RequestsPerMinute))
	if err != nil {
		return false, err
	}
	return res.Allowed > 0, nil
}

func (l *Limiter) allowFallback(ip string) bool {
	if l.metrics != nil {
		l.metrics.IncrementRateLimitFallback()
	}

	l.mu.Lock()
	limiter, ok := l.fallback[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(l.cfg.RequestsPerMinute)/60.0), l.cfg.Burst)
		l.fallback[ip] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// GetStats returns rate limiter statistics
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	tracked := len(l.fallback)
	l.mu.Unlock()

	backend := "memory"
	if l.window != nil {
		backend = "redis"
	}

	return map[string]interface{}{
		"backend":             backend,
		"requests_per_minute": l.cfg.RequestsPerMinute,
		"burst":               l.cfg.Burst,
		"fallback_ips":        tracked,
	}
}

// RetryAfter returns the interval a blocked client should wait before retrying.
func (l *Limiter) RetryAfter() time.Duration {
	return time.Minute / time.Duration(l.cfg.RequestsPerMinute)
}
