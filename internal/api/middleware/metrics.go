package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/pkg/metrics"
)

// Metrics 记录请求数与耗时；path 使用路由模板，避免 ID 造成标签基数膨胀
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
