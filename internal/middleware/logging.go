package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"nemt/internal/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.ErrorContext(c.Request.Context(), "request failed", args...)
		case status >= 400:
			logger.WarnContext(c.Request.Context(), "request rejected", args...)
		default:
			logger.InfoContext(c.Request.Context(), "request handled", args...)
		}
	}
}
