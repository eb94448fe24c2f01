package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(txManager repository.TransactionManager, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves a user's profile by ID
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByID(ctx, userID)
		if err != nil {
			return mapUserLookupError(err)
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// UpdateProfile applies the provided optional fields. Blank values are ignored.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		var fields repository.ProfileFields
		if input.Name != nil {
			if name := strings.TrimSpace(*input.Name); name != "" {
				fields.Name = &name
			}
		}
		if input.Phone != nil {
			if phone := strings.TrimSpace(*input.Phone); phone != "" {
				fields.Phone = &phone
			}
		}

		if err := userRepo.UpdateProfile(ctx, userID, fields); err != nil {
			return mapUserLookupError(err)
		}

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return mapUserLookupError(err)
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return user, nil
}

func mapUserLookupError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return errors.Wrap(err, "failed to find user")
}
