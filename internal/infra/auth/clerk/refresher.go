package clerk

import (
	"context"
	"log/slog"

	"midatopay/config"
	"midatopay/internal/domain/lifecycle"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// KeyRefresher reloads the Clerk JWKS on a cron schedule so key rotation does not
// stall the first request after the cache expires.
type KeyRefresher struct {
	cron     *cron.Cron
	client   *Client
	schedule string
	logger   *slog.Logger
}

// RefresherParams holds dependencies for KeyRefresher, injected by Fx
type RefresherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Client *Client
	Logger *slog.Logger
}

// NewKeyRefresher registers the refresh job with the application lifecycle.
func NewKeyRefresher(params RefresherParams) *KeyRefresher {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(params.Logger.Handler(), slog.LevelInfo))

	r := &KeyRefresher{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger))),
		client: params.Client,
		logger: params.Logger,
	}
	if params.Config.Clerk != nil {
		r.schedule = params.Config.Clerk.JWKSRefreshSchedule
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			r.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			r.Stop(ctx)

			return nil
		},
	})

	return r
}

// Start schedules the job. Without a schedule or a configured client it does nothing.
func (r *KeyRefresher) Start() {
	if r.schedule == "" || !r.client.Enabled() {
		r.logger.Info("Clerk JWKS refresh disabled")

		return
	}

	if _, err := r.cron.AddFunc(r.schedule, r.refresh); err != nil {
		r.logger.Error("failed to schedule Clerk JWKS refresh", slog.Any("error", err))

		return
	}
	r.logger.Info("scheduled Clerk JWKS refresh", slog.String("schedule", r.schedule))

	r.cron.Start()
}

// Stop waits for a running refresh or for ctx to end.
func (r *KeyRefresher) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *KeyRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := r.client.RefreshKeys(ctx); err != nil {
		r.logger.Warn("Clerk JWKS refresh failed", slog.Any("error", err))

		return
	}
	r.logger.Debug("Clerk JWKS refreshed")
}
