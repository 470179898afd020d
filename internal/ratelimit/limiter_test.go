package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkovacevic/github-profile-analyzer/internal/monitoring"
)

func TestFallbackLimiterBlocksAfterBurst(t *testing.T) {
	cfg := Config{RequestsPerMinute: 60, Burst: 3}
	limiter := NewLimiter(cfg, &RedisClient{}, monitoring.NewMetrics())

	ctx := context.Background()

	// The burst is honored, then the bucket is drained.
	for i := 0; i < cfg.Burst; i++ {
		assert.True(t, limiter.AllowIP(ctx, "10.0.0.1"), "request %d within burst should pass", i)
	}
	assert.False(t, limiter.AllowIP(ctx, "10.0.0.1"))
}

func TestFallbackLimiterIsolatesIPs(t *testing.T) {
	cfg := Config{RequestsPerMinute: 60, Burst: 1}
	limiter := NewLimiter(cfg, &RedisClient{}, monitoring.NewMetrics())

	ctx := context.Background()

	assert.True(t, limiter.AllowIP(ctx, "10.0.0.1"))
	assert.False(t, limiter.AllowIP(ctx, "10.0.0.1"))

	// A different client still has its full budget.
	assert.True(t, limiter.AllowIP(ctx, "10.0.0.2"))
}

func TestFallbackCountsInMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	limiter := NewLimiter(DefaultConfig(), &RedisClient{}, metrics)

	limiter.AllowIP(context.Background(), "10.0.0.1")
	assert.Equal(t, int64(1), metrics.RateLimitFallbackCount)
}

func TestGetStats(t *testing.T) {
	limiter := NewLimiter(DefaultConfig(), &RedisClient{}, nil)

	limiter.AllowIP(context.Background(), "10.0.0.1")
	limiter.AllowIP(context.Background(), "10.0.0.2")

	stats := limiter.GetStats()
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, 2, stats["fallback_ips"])
	assert.Equal(t, 30, stats["requests_per_minute"])
}
