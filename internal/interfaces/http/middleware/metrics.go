package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonfin/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count, latency and in-flight requests.
// Unmatched routes are reported as "unmatched".
func HTTPMetrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.Start(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Finish(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
