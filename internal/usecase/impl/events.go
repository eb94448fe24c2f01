package impl

import (
	"context"
	"log/slog"
	"time"

	"midatopay/config"
	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	"midatopay/internal/domain/service"
)

// Sources recorded on identity events
const (
	eventSourceRegister  = "register"
	eventSourceReconcile = "reconcile"
	eventSourceWebhook   = "webhook"
)

// publishIdentityEvent emits an identity event for user. Publishing never fails the caller.
func publishIdentityEvent(
	ctx context.Context,
	publisher service.EventPublisher,
	logger *slog.Logger,
	eventType, source string,
	user *entity.User,
) {
	if publisher == nil || user == nil {
		return
	}

	event := &service.IdentityEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}
	if user.ExternalID != nil {
		event.ExternalID = *user.ExternalID
	}

	if err := publisher.PublishIdentityEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish identity event",
			slog.String("type", eventType),
			slog.String("userID", event.UserID),
			slog.Any("error", err))
	}
}

// noopMetrics is used when no metrics collector is wired.
type noopMetrics struct{}

func (noopMetrics) ObserveAuthentication(string, string) {}
func (noopMetrics) ObserveReconciliation(string)         {}
func (noopMetrics) ObserveWebhook(string, string)        {}

func metricsOrNoop(m service.AuthMetrics) service.AuthMetrics {
	if m == nil {
		return noopMetrics{}
	}

	return m
}

const defaultStorageTimeout = 5 * time.Second

// storageTimeout bounds the user storage work done on behalf of one request or delivery.
func storageTimeout(cfg *config.Config) time.Duration {
	if cfg != nil && cfg.Auth != nil && cfg.Auth.StorageTimeout > 0 {
		return cfg.Auth.StorageTimeout
	}

	return defaultStorageTimeout
}
