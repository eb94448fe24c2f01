package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"midatopay/config"
	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/constants"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/domain/service"
	"midatopay/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Webhook results, used as metric labels
const (
	webhookProcessed = "processed"
	webhookIgnored   = "ignored"
	webhookRejected  = "rejected"
	webhookFailed    = "failed"
)

// webhookEnvelope is the outer shape of a provider webhook delivery.
type webhookEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type webhookService struct {
	verifier   service.WebhookVerifier
	userRepo   repository.UserRepository
	reconciler usecase.IdentityReconciler
	cache      service.ProfileCache
	publisher  service.EventPublisher
	metrics    service.AuthMetrics
	logger     *slog.Logger

	storageTimeout time.Duration
}

// WebhookServiceParams holds dependencies for the webhook service, injected by Fx.
type WebhookServiceParams struct {
	fx.In

	Verifier   service.WebhookVerifier
	UserRepo   repository.UserRepository
	Reconciler usecase.IdentityReconciler
	Cache      service.ProfileCache   `optional:"true"`
	Publisher  service.EventPublisher `optional:"true"`
	Metrics    service.AuthMetrics    `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewWebhookService creates the provider webhook processor.
func NewWebhookService(params WebhookServiceParams) usecase.WebhookUsecase {
	return &webhookService{
		verifier:   params.Verifier,
		userRepo:   params.UserRepo,
		reconciler: params.Reconciler,
		cache:      params.Cache,
		publisher:  params.Publisher,
		metrics:    metricsOrNoop(params.Metrics),
		logger:     params.Logger,

		storageTimeout: storageTimeout(params.Config),
	}
}

func (srv *webhookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Process verifies the delivery over the raw payload before decoding it, then applies
// the event. Unknown event types are acknowledged without side effects.
func (srv *webhookService) Process(ctx context.Context, headers service.WebhookHeaders, payload []byte) (string, error) {
	if err := srv.verifier.Verify(headers, payload); err != nil {
		srv.metrics.ObserveWebhook("", webhookRejected)
		srv.log(ctx).Warn("Webhook rejected", slog.String("svixID", headers.ID), slog.Any("error", err))

		return "", err
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		srv.metrics.ObserveWebhook("", webhookRejected)

		return "", domainerrors.ErrValidationFailed.WithDetails("malformed webhook payload: " + err.Error())
	}

	logger := srv.log(ctx).With(slog.String("type", envelope.Type), slog.String("svixID", headers.ID))

	handled, err := srv.dispatch(ctx, envelope)
	if err != nil {
		srv.metrics.ObserveWebhook(envelope.Type, webhookFailed)
		logger.Error("Webhook processing failed", slog.Any("error", err))

		return envelope.Type, domainerrors.ErrWebhookProcessingFailed.WrapMessage(err.Error())
	}

	if !handled {
		srv.metrics.ObserveWebhook(envelope.Type, webhookIgnored)
		logger.Debug("Webhook event ignored")

		return envelope.Type, nil
	}

	srv.metrics.ObserveWebhook(envelope.Type, webhookProcessed)
	logger.Info("Webhook processed")

	return envelope.Type, nil
}

// dispatch applies a known event under the storage timeout.
func (srv *webhookService) dispatch(ctx context.Context, envelope webhookEnvelope) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, srv.storageTimeout)
	defer cancel()

	switch envelope.Type {
	case constants.ClerkEventUserCreated:
		return true, srv.handleCreated(ctx, envelope.Data)
	case constants.ClerkEventUserUpdated:
		return true, srv.handleUpdated(ctx, envelope.Data)
	case constants.ClerkEventUserDeleted:
		return true, srv.handleDeleted(ctx, envelope.Data)
	}

	return false, nil
}

func decodeProfile(data json.RawMessage) (*entity.ExternalProfile, error) {
	var profile entity.ExternalProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, errors.Wrap(err, "decode user payload")
	}
	if profile.ID == "" {
		return nil, errors.New("user payload without id")
	}

	return &profile, nil
}

func (srv *webhookService) handleCreated(ctx context.Context, data json.RawMessage) error {
	profile, err := decodeProfile(data)
	if err != nil {
		return err
	}

	if _, err := srv.reconciler.Reconcile(ctx, profile.ID, profile); err != nil {
		return errors.Wrap(err, "reconcile created user")
	}

	return nil
}

// handleUpdated syncs name and email onto the linked row. Inactive rows are synced too.
func (srv *webhookService) handleUpdated(ctx context.Context, data json.RawMessage) error {
	profile, err := decodeProfile(data)
	if err != nil {
		return err
	}

	user, err := srv.userRepo.FindByExternalID(ctx, profile.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return srv.handleCreated(ctx, data)
	}
	if err != nil {
		return errors.Wrap(err, "find user by external id")
	}

	srv.invalidate(ctx, profile.ID)

	changed := false
	email := entity.NormalizeEmail(profile.PrimaryEmail())
	if name := profile.DisplayName(email, user.Name); name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if email != "" && email != user.Email {
		user.Email = email
		changed = true
	}

	if !changed {
		return nil
	}

	if err := srv.userRepo.SyncIdentity(ctx, user.ID, user.Name, user.Email); err != nil {
		return errors.Wrap(err, "sync user")
	}

	publishIdentityEvent(ctx, srv.publisher, srv.log(ctx), service.IdentityEventSynced, eventSourceWebhook, user)

	return nil
}

// handleDeleted soft-deactivates the linked row. Rows are never removed.
func (srv *webhookService) handleDeleted(ctx context.Context, data json.RawMessage) error {
	var deleted struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &deleted); err != nil {
		return errors.Wrap(err, "decode deleted payload")
	}
	if deleted.ID == "" {
		return errors.New("deleted payload without id")
	}

	srv.invalidate(ctx, deleted.ID)

	user, err := srv.userRepo.FindByExternalID(ctx, deleted.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Deleted event for unknown subject", slog.String("subjectID", deleted.ID))

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "find user by external id")
	}

	changed, err := srv.userRepo.Deactivate(ctx, user.ID)
	if err != nil {
		return errors.Wrap(err, "deactivate user")
	}
	if !changed {
		return nil
	}
	user.IsActive = false

	publishIdentityEvent(ctx, srv.publisher, srv.log(ctx), service.IdentityEventDeactivated, eventSourceWebhook, user)

	return nil
}

func (srv *webhookService) invalidate(ctx context.Context, subjectID string) {
	if srv.cache != nil {
		srv.cache.Delete(ctx, subjectID)
	}
}
