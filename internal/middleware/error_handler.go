package middleware

import (
	"geocortex/internal/errors"
	"geocortex/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := errors.MapError(c.Errors.Last().Err)

		logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, request_id=%s, code=%s, error=%s",
			c.Request.URL.Path,
			c.Request.Method,
			c.ClientIP(),
			c.GetString(RequestIDKey),
			appErr.Code,
			appErr.TechnicalMessage)

		if c.Writer.Written() {
			return
		}
		body := gin.H{
			"message": appErr.UserMessage,
			"code":    appErr.Code,
		}
		if appErr.Detail != "" {
			body["detail"] = appErr.Detail
		}
		c.JSON(appErr.HTTPStatus, gin.H{"error": body})
	}
}
