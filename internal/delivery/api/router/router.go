// Package router contains routing for the API delivery.
package router

import (
	"midatopay/internal/delivery/api/middleware"
	"midatopay/internal/delivery/api/router/handler"
	"midatopay/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	WebhookHandler  *handler.WebhookHandler
	DisabledHandler *handler.DisabledHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimit       *middleware.RateLimitMiddleware
	Gatherer        prometheus.Gatherer
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	webhookHandler  *handler.WebhookHandler
	disabledHandler *handler.DisabledHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimit       *middleware.RateLimitMiddleware
	gatherer        prometheus.Gatherer
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		webhookHandler:  params.WebhookHandler,
		disabledHandler: params.DisabledHandler,
		authMiddleware:  params.AuthMiddleware,
		rateLimit:       params.RateLimit,
		gatherer:        params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.gatherer)))

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.rateLimit.Handle)
		authGroup.POST("/login", r.authHandler.Login, r.rateLimit.Handle)
		authGroup.GET("/profile", r.authHandler.GetProfile, r.authMiddleware.RequireAuth)
		authGroup.PUT("/profile", r.authHandler.UpdateProfile, r.authMiddleware.RequireAuth)
		authGroup.POST("/create-wallet", r.authHandler.CreateWallet, r.authMiddleware.RequireAuth)
		authGroup.PUT("/change-password", r.authHandler.ChangePassword, r.authMiddleware.RequireLocal)
	}

	webhooksGroup := api.Group("/webhooks")
	{
		webhooksGroup.POST("/clerk", r.webhookHandler.Clerk)
	}

	for _, route := range r.disabledHandler.Routes() {
		var mws []echo.MiddlewareFunc
		if route.Local {
			mws = append(mws, r.authMiddleware.RequireLocal)
		}
		api.Add(route.Method, route.Path, r.disabledHandler.Handle(route), mws...)
	}
}
