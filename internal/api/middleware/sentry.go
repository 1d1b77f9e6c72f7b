package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamforge/internal/pkg/logger"
	pkgErrors "teamforge/pkg/errors"
	"teamforge/pkg/responses"
)

// SentryMiddleware 为每个请求绑定独立的Hub, 并上报panic
func SentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		ctx := sentry.SetHubOnContext(c.Request.Context(), hub)
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			if rec := recover(); rec != nil {
				hub.RecoverWithContext(ctx, rec)
				logger.Error("请求处理panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"))
				if !c.Writer.Written() {
					c.Abort()
					responses.ErrorWithCode(c, http.StatusInternalServerError, pkgErrors.ErrInternalError.Message)
				}
				_ = c.Error(fmt.Errorf("panic: %v", rec))
			}
		}()

		c.Next()
	}
}
