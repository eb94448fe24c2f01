package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"midatopay/config"
	"midatopay/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix  = "midatopay:clerk:profile:"
	defaultProfileTTL = 5 * time.Minute
	redisPingTimeout  = 3 * time.Second
)

// RedisProfileCache stores external profiles as JSON with a TTL. Redis failures are
// logged and treated as misses so authentication never depends on the cache.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisProfileCache connects to Redis and verifies the connection.
func NewRedisProfileCache(ctx context.Context, cfg *config.ProfileCacheConfig, logger *slog.Logger) (*RedisProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to connect to Redis at %s", cfg.Addr)
	}

	logger.Info("Profile cache Redis client initialized",
		slog.String("address", cfg.Addr),
		slog.Int("db", cfg.DB),
	)

	return newRedisProfileCache(client, cfg.TTL, logger), nil
}

func newRedisProfileCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}

	return &RedisProfileCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisProfileCache) Get(ctx context.Context, subjectID string) (*entity.ExternalProfile, bool) {
	raw, err := c.client.Get(ctx, profileKeyPrefix+subjectID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "profile cache read failed", slog.Any("error", err))
		}

		return nil, false
	}

	profile := &entity.ExternalProfile{}
	if err := json.Unmarshal(raw, profile); err != nil {
		c.logger.WarnContext(ctx, "profile cache entry is corrupt", slog.String("subject_id", subjectID))

		return nil, false
	}

	return profile, true
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *entity.ExternalProfile) {
	if profile == nil || profile.ID == "" {
		return
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, profileKeyPrefix+profile.ID, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "profile cache write failed", slog.Any("error", err))
	}
}

func (c *RedisProfileCache) Delete(ctx context.Context, subjectID string) {
	if err := c.client.Del(ctx, profileKeyPrefix+subjectID).Err(); err != nil {
		c.logger.WarnContext(ctx, "profile cache delete failed", slog.Any("error", err))
	}
}

// Close releases the Redis connection pool.
func (c *RedisProfileCache) Close() error {
	return errors.WithStack(c.client.Close())
}
