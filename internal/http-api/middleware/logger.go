package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

const loggerKey = "logger"

// WithLogger makes log available to handlers through Logger.
func WithLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggerKey, log)
		c.Next()
	}
}

// Logger returns the request's logger, or slog.Default() when none was set.
func Logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return slog.Default()
}
