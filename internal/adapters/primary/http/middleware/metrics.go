package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"akiya-analysis-service/internal/metrics"
)

// Metrics records request durations per route. c.FullPath() keeps the label
// cardinality bounded; unmatched requests fall into one bucket.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
