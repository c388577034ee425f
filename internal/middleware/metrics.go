package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/pkg/metrics"
)

// unmatchedRoute labels requests that hit no registered route so raw paths never become label values.
const unmatchedRoute = "unmatched"

// Metrics observes request latency labelled by method, route pattern and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.APILatency.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
