package middleware

import (
	"log/slog"
	"time"

	"realestate-app/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records a count and a duration sample for every
// request. The core handlers never touch the aggregator themselves; this
// is the only place request metrics are fed from.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		method := c.Request.Method
		status := c.Writer.Status()
		duration := time.Since(start).Milliseconds()

		metrics.Default.RecordRequestCount(endpoint, method, status)
		metrics.Default.RecordRequestDuration(endpoint, method, duration)

		slog.Info("request processed",
			"method", method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration,
		)
	}
}
