package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/todo-simple-api/internal/constants"
	"github.com/yukikurage/todo-simple-api/internal/logging"
)

// RequestID reuses the client's X-Request-Id or generates one, echoes it in the
// response and attaches a request-scoped logger to the request context.
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		reqLogger := logger.With(slog.String("request_id", requestID))
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))

		c.Next()
	}
}

// GetRequestID returns the current request id, or "" outside RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
