package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HACKWAVE2025/B54/internal/observability"
)

// Metrics records per-route request counts and latency. Scrapes of the
// metrics endpoint itself and unmatched paths are folded into fixed labels so
// arbitrary URLs cannot grow the label set.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
