package impl

import (
	"context"
	"log/slog"

	"midatopay/config"
	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/domain/service"
	"midatopay/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultDisplayName = "Usuario"

// Reconciliation outcomes, used as metric labels
const (
	reconcileExisting = "existing"
	reconcileLinked   = "linked"
	reconcileCreated  = "created"
	reconcileConflict = "conflict"
	reconcileFailed   = "failed"
)

type reconciler struct {
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	metrics     service.AuthMetrics
	maxAttempts int
	logger      *slog.Logger
}

// ReconcilerParams holds dependencies for the identity reconciler, injected by Fx.
type ReconcilerParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Publisher service.EventPublisher `optional:"true"`
	Metrics   service.AuthMetrics    `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewReconciler creates the identity reconciler.
func NewReconciler(params ReconcilerParams) usecase.IdentityReconciler {
	maxAttempts := 1
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ReconcileMaxAttempts > 0 {
		maxAttempts = params.Config.Auth.ReconcileMaxAttempts
	}

	return &reconciler{
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		metrics:     metricsOrNoop(params.Metrics),
		maxAttempts: maxAttempts,
		logger:      params.Logger,
	}
}

func (r *reconciler) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// Reconcile returns the canonical user for subjectID. A uniqueness conflict means another
// request created or linked the row concurrently, so the lookup is re-run and the
// winner is taken as canonical.
func (r *reconciler) Reconcile(ctx context.Context, subjectID string, profile *entity.ExternalProfile) (*entity.User, error) {
	if subjectID == "" {
		r.metrics.ObserveReconciliation(reconcileFailed)

		return nil, domainerrors.ErrReconciliationFailed.WrapMessage("empty subject id")
	}

	email := profile.CandidateEmail(subjectID)

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		user, outcome, err := r.reconcileOnce(ctx, subjectID, email, profile)
		if err == nil {
			r.metrics.ObserveReconciliation(outcome)
			r.publish(ctx, outcome, user)

			return user, nil
		}

		if !errors.Is(err, repository.ErrDuplicateUser) {
			r.metrics.ObserveReconciliation(reconcileFailed)
			r.log(ctx).Error("Reconciliation failed",
				slog.String("subjectID", subjectID),
				slog.Any("error", err))

			return nil, domainerrors.ErrReconciliationFailed.WrapMessage(err.Error())
		}

		r.metrics.ObserveReconciliation(reconcileConflict)
		r.log(ctx).Info("Reconciliation conflict, retrying lookup",
			slog.String("subjectID", subjectID),
			slog.Int("attempt", attempt))
		lastErr = err
	}

	r.metrics.ObserveReconciliation(reconcileFailed)

	return nil, domainerrors.ErrReconciliationFailed.WrapMessage(errors.Wrapf(lastErr, "gave up after %d attempts", r.maxAttempts).Error())
}

func (r *reconciler) reconcileOnce(
	ctx context.Context,
	subjectID, email string,
	profile *entity.ExternalProfile,
) (*entity.User, string, error) {
	user, err := r.userRepo.FindByExternalIDOrEmail(ctx, subjectID, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &entity.User{
			Email:      email,
			Name:       profile.DisplayName(email, defaultDisplayName),
			Role:       entity.RoleMerchant,
			IsActive:   true,
			ExternalID: &subjectID,
		}
		if err := r.userRepo.Create(ctx, user); err != nil {
			return nil, "", errors.Wrap(err, "create provisioned user")
		}

		r.log(ctx).Info("Provisioned user from external identity",
			slog.Any("userID", user.ID),
			slog.String("subjectID", subjectID))

		return user, reconcileCreated, nil
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "lookup by external id or email")
	}

	if user.IsLinked() {
		if *user.ExternalID != subjectID {
			r.log(ctx).Warn("Email matched a user linked to another subject",
				slog.Any("userID", user.ID),
				slog.String("subjectID", subjectID))
		}

		return user, reconcileExisting, nil
	}

	if err := r.userRepo.LinkExternalID(ctx, user.ID, subjectID); err != nil {
		return nil, "", errors.Wrap(err, "backfill external id")
	}
	user.LinkExternal(subjectID)

	r.log(ctx).Info("Linked existing user to external identity",
		slog.Any("userID", user.ID),
		slog.String("subjectID", subjectID))

	return user, reconcileLinked, nil
}

func (r *reconciler) publish(ctx context.Context, outcome string, user *entity.User) {
	switch outcome {
	case reconcileCreated:
		publishIdentityEvent(ctx, r.publisher, r.log(ctx), service.IdentityEventProvisioned, eventSourceReconcile, user)
	case reconcileLinked:
		publishIdentityEvent(ctx, r.publisher, r.log(ctx), service.IdentityEventLinked, eventSourceReconcile, user)
	}
}
