package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 超出 maxBytes 时读取请求体返回 *http.MaxBytesError，由 Handler 的参数绑定统一报错
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > maxBytes {
				response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
				c.Abort()
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
