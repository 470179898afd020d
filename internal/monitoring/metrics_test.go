package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementGitHubCalls()
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(404)
	m.RecordExternalAPIRequest("github", true)
	m.RecordExternalAPIRequest("github", false)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, 50.0, stats["error_rate_percent"])
	assert.Equal(t, 50.0, stats["cache_hit_rate_percent"])
	assert.Equal(t, int64(1), stats["github_api_calls"])

	distribution := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), distribution[200])
	assert.Equal(t, int64(1), distribution[404])

	apiStats := m.GetExternalAPIStats()
	require.Contains(t, apiStats, "github")
	github := apiStats["github"].(map[string]interface{})
	assert.Equal(t, int64(2), github["requests"])
	assert.Equal(t, int64(1), github["errors"])
	assert.Equal(t, 50.0, github["error_rate"])
}

func TestGetPercentileResponseTime(t *testing.T) {
	m := NewMetrics()

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	assert.Equal(t, 50*time.Millisecond, m.GetPercentileResponseTime(50))
	assert.Equal(t, 100*time.Millisecond, m.GetPercentileResponseTime(100))
	assert.Equal(t, time.Duration(0), NewMetrics().GetPercentileResponseTime(95))
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementRateLimitIPBlock()
	m.IncrementRateLimitFallback()
	m.RecordResponseTime(5 * time.Millisecond)
	m.RecordRequestByStatus(500)
	m.RecordExternalAPIRequest("github", false)

	m.Reset()

	assert.Equal(t, int64(0), m.RequestCount)
	assert.Equal(t, int64(0), m.ErrorCount)
	assert.Equal(t, int64(0), m.CacheHits)
	assert.Equal(t, int64(0), m.RateLimitIPBlocks)
	assert.Equal(t, int64(0), m.RateLimitFallbackCount)
	assert.Empty(t, m.GetStatusCodeDistribution())
	assert.Empty(t, m.GetExternalAPIStats())
	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(50))
}
