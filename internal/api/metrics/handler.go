package metrics

import (
	"net/http"

	inframetrics "realestate-app/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /metrics
// ------------------------------
func GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, inframetrics.Default.GetMetrics())
}

// ------------------------------
// GET /metrics/cache
// ------------------------------
func GetCacheMetrics(c *gin.Context) {
	m := inframetrics.Default.GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"hits":      m["cache_hits"],
		"misses":    m["cache_misses"],
		"hitRate":   m["cache_hit_rate_percent"],
		"timestamp": m["timestamp"],
	})
}

// ------------------------------
// GET /metrics/requests
// ------------------------------
func GetRequestMetrics(c *gin.Context) {
	m := inframetrics.Default.GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"totalRequests":    m["total_requests"],
		"requestCounts":    m["request_counts"],
		"averageDurations": m["average_request_durations"],
		"timestamp":        m["timestamp"],
	})
}
