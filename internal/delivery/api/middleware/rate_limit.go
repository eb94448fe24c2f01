package middleware

import (
	"net/http"

	"midatopay/config"
	domainerrors "midatopay/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles credential endpoints per client IP.
type RateLimitMiddleware struct {
	limiter echo.MiddlewareFunc
}

// NewRateLimitMiddleware builds the limiter from http.rateLimit. A missing or
// disabled section yields a pass-through.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	rl := cfg.HTTP.RateLimit
	if rl == nil || !rl.Enabled || rl.Rate <= 0 {
		return &RateLimitMiddleware{}
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rl.Rate),
		Burst:     rl.Burst,
		ExpiresIn: rl.ExpiresIn,
	})

	limiter := echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return domainerrors.ErrRateLimited
		},
	})

	return &RateLimitMiddleware{limiter: limiter}
}

// Handle applies the limiter, if configured.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if m.limiter == nil {
		return next
	}

	return m.limiter(next)
}
