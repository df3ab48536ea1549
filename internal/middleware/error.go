package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/pkg/logger"
)

// ErrorHandler renders the last error handlers recorded with c.Error.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only handle errors if they exist
		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last()
		status, body := handler.ErrorFor(lastErr.Err)

		fields := []interface{}{
			"request_id", c.GetString(ContextRequestID),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"status", status,
		}
		if status >= http.StatusInternalServerError {
			log.Error(lastErr.Err, "Request error", fields...)
		} else {
			log.Debug("Request rejected", append(fields, "error", lastErr.Error())...)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, body)
	}
}
