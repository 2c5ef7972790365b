package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders 响应只有 JSON 与附件下载，不渲染页面
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		h.Set("Referrer-Policy", "no-referrer")
		// 页面快照随每次操作变化
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}
