// Package cache provides ProfileCache implementations.
package cache

import (
	"context"
	"log/slog"

	"midatopay/config"
	"midatopay/internal/domain/constants"
	"midatopay/internal/domain/entity"
	"midatopay/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopCache never stores anything
type noopCache struct{}

func (noopCache) Get(context.Context, string) (*entity.ExternalProfile, bool) { return nil, false }
func (noopCache) Set(context.Context, *entity.ExternalProfile)               {}
func (noopCache) Delete(context.Context, string)                             {}

// CacheParams holds dependencies for ProfileCache, injected by Fx
type CacheParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewProfileCache creates a ProfileCache based on configuration
func NewProfileCache(params CacheParams) (service.ProfileCache, error) {
	cfg := params.Config.ProfileCache
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Profile cache not configured, using no-op cache")

		return noopCache{}, nil
	}

	switch cfg.Provider {
	case constants.ProfileCacheProviderRedis:
		cache, err := NewRedisProfileCache(params.Ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				logger.Info("Closing profile cache")

				return cache.Close()
			},
		})

		return cache, nil
	default:
		return nil, errors.Errorf("unknown profile cache provider: %s", cfg.Provider)
	}
}
