package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"teamforge/internal/pkg/jwt"
	"teamforge/pkg/constants"
	pkgErrors "teamforge/pkg/errors"
	"teamforge/pkg/responses"
)

// AuthMiddleware JWT认证中间件
// 优先读取Cookie中的token, 其次读取 Authorization: Bearer <token>
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			responses.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		// 将用户信息存入context
		c.Set(constants.JWTContextKey, claims)
		c.Set(constants.ContextEmail, claims.Email)
		c.Set(constants.ContextUserID, claims.UserID)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieToken); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix))
}

// CurrentEmail 当前登录用户邮箱
func CurrentEmail(c *gin.Context) string {
	return c.GetString(constants.ContextEmail)
}

// CurrentClaims 当前登录用户Claims
func CurrentClaims(c *gin.Context) *jwt.UserClaims {
	v, ok := c.Get(constants.JWTContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.UserClaims)
	return claims
}
