package main

import (
	"context"
	"log/slog"
	"os"

	"midatopay/config"
	"midatopay/internal/delivery"
	"midatopay/internal/delivery/api"
	apimiddleware "midatopay/internal/delivery/api/middleware"
	"midatopay/internal/delivery/api/router/handler"
	"midatopay/internal/domain/service"
	"midatopay/internal/infra/auth"
	"midatopay/internal/infra/auth/clerk"
	"midatopay/internal/infra/cache"
	logs "midatopay/internal/infra/log"
	"midatopay/internal/infra/metrics"
	"midatopay/internal/infra/persistence/postgres"
	"midatopay/internal/infra/pubsub"
	"midatopay/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			// scheduled JWKS refresh hooks into the lifecycle on construction
			func(*clerk.KeyRefresher) {},
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			metrics.NewRegistry,
			func(reg *prometheus.Registry) prometheus.Registerer { return reg },
			func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
			metrics.NewCollector,
			cache.NewProfileCache,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			clerk.NewClient,
			func(c *clerk.Client) service.IdentityProvider { return c },
			clerk.NewWebhookVerifier,
			clerk.NewKeyRefresher,
			func(c *metrics.Collector) service.AuthMetrics { return c },
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewReconciler,
			impl.NewAuthenticator,
			impl.NewWebhookService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
			apimiddleware.NewRateLimitMiddleware,
			fx.Annotate(
				apimiddleware.NewMetricsMiddleware,
				fx.From(new(*metrics.Collector)),
			),
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewWebhookHandler,
			handler.NewDisabledHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
