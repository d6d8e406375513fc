package middlewares

import (
	"strconv"
	"time"

	"usof/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 按路由模板统计请求数和耗时，未匹配的路由记为 unmatched
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
