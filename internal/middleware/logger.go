package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-simple-api/internal/logging"
)

// RequestLogger writes one structured line per request once it completes.
// The level follows the response status.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if c.Request.URL.RawQuery != "" {
			fields = append(fields, slog.String("query", c.Request.URL.RawQuery))
		}
		if p := GetPrincipal(c); p != nil {
			fields = append(fields, slog.Uint64("user_id", p.ID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, slog.String("error", c.Errors.String()))
		}

		level := slog.LevelInfo
		if status >= 400 {
			level = slog.LevelWarn
		}
		if status >= 500 {
			level = slog.LevelError
		}

		ctx := c.Request.Context()
		logging.FromContext(ctx, logger).LogAttrs(ctx, level, "HTTP Request", fields...)
	}
}
