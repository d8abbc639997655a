package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/pkg/jwt"
	"github.com/qs3c/castquest_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// OptionalAuth 可选认证中间件：不强制登录，携带有效令牌时记录用户 ID
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err == nil {
			c.Set(UserIDKey, claims.UserID)
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// SameUser 令牌中的用户与请求操作的用户不一致时返回 false 并响应 403
func SameUser(c *gin.Context, userID string) bool {
	current, ok := GetUserID(c)
	if !ok || current == userID {
		return true
	}
	response.PermissionError(c, "不能操作其他用户的数据")
	return false
}

// RequireSameUser 路径参数中的用户必须与令牌一致
func RequireSameUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SameUser(c, c.Param(param)) {
			return
		}
		c.Next()
	}
}
