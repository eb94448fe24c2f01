// Package context carries request-scoped values between middleware, handlers and
// the usecase layer.
package context

import (
	"context"
	"log/slog"

	"midatopay/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyAuthUser is the key for the authenticated canonical user.
	KeyAuthUser ContextKey = "auth_user"

	// KeyExternalProfile is the key for the provider profile, set on the external path only.
	KeyExternalProfile ContextKey = "external_profile"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request ID, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetAuthUser stores the authenticated user in echo.Context.
func SetAuthUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyAuthUser), user)
}

// GetAuthUser returns the authenticated user, if any.
func GetAuthUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyAuthUser)).(*entity.User)

	return user, ok && user != nil
}

// SetExternalProfile stores the provider profile in echo.Context.
func SetExternalProfile(c echo.Context, profile *entity.ExternalProfile) {
	c.Set(string(KeyExternalProfile), profile)
}

// GetExternalProfile returns the provider profile attached on the external path.
func GetExternalProfile(c echo.Context) (*entity.ExternalProfile, bool) {
	profile, ok := c.Get(string(KeyExternalProfile)).(*entity.ExternalProfile)

	return profile, ok && profile != nil
}
