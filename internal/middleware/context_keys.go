package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	userIDKey       = contextKey("userID")
	requestIDCtxKey = contextKey("requestID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user id from the Gin
// context. It returns the id and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(int64); ok {
			return userID, true
		}
		return 0, false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(int64); ok {
			return userID, true
		}
	}
	return 0, false
}

// GetRequestIDFromCtx retrieves the request id injected by the logging
// middleware, or "" when absent (e.g. in tests).
func GetRequestIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDCtxKey).(string); ok {
		return id
	}
	return ""
}
