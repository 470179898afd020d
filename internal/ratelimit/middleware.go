package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkovacevic/github-profile-analyzer/internal/monitoring"
)

// IPRateLimitMiddleware blocks clients that exceed the per-IP limit with
// a 429 response.
func IPRateLimitMiddleware(limiter *Limiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.AllowIP(c.Request.Context(), ip) {
			if metrics != nil {
				metrics.IncrementRateLimitIPBlock()
			}
			slog.Warn("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)

			retryAfter := int(math.Ceil(limiter.RetryAfter().Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate limit exceeded",
				"message": "Too many requests. Please slow down and try again shortly.",
			})
			return
		}

		c.Next()
	}
}
