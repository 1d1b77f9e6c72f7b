package middleware

import (
	"github.com/gin-gonic/gin"

	"teamforge/internal/pkg/metrics"
)

// MetricsMiddleware 记录请求数与耗时, path 取路由模板避免标签膨胀
func MetricsMiddleware(skipPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == skipPath {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		done(c.Request.Method, path, c.Writer.Status())
	}
}
