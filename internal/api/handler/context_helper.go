package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teachove/backend/internal/api/middleware"
	"teachove/backend/pkg/jwt"
	"teachove/backend/pkg/response"
)

// MustGetIdentity 从 Gin 上下文中安全提取会话身份。
// JWT 中间件未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetIdentity(c *gin.Context) (jwt.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return jwt.Identity{}, false
	}
	id, ok := v.(jwt.Identity)
	if !ok || id.UserID == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return jwt.Identity{}, false
	}
	return id, true
}

// bindJSON 绑定请求体；失败时写入 400（或 413）响应
func bindJSON(c *gin.Context, dst interface{}, code int) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, code, "invalid request body", err.Error())
		return false
	}
	return true
}

// detached 页面请求不随客户端断开而取消
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
