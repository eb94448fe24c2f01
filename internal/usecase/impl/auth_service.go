// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/domain/service"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local merchant account and returns it with a fresh credential.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	var registered *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		user := &entity.User{
			Email:        email,
			Name:         input.Name,
			Phone:        input.Phone,
			PasswordHash: hash,
			Role:         entity.RoleMerchant,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
			}

			return errors.Wrap(err, "failed to create user")
		}
		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.Generate(registered)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	publishIdentityEvent(ctx, srv.publisher, srv.log(ctx), service.IdentityEventRegistered, eventSourceRegister, registered)
	srv.log(ctx).Info("Registration completed", slog.Any("userID", registered.ID))

	return &usecase.AuthOutput{User: registered, Token: token}, nil
}

// Login checks an email/password pair. Unknown, inactive and provider-only accounts are
// indistinguishable from a wrong password. Login never writes.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Login rejected: unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive || !user.HasLocalCredential() || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.Any("userID", user.ID), slog.Bool("active", user.IsActive))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Generate(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// ChangePassword replaces the local password after checking the current one.
func (srv *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input usecase.ChangePasswordInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if !user.HasLocalCredential() || !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrInvalidCurrentPassword
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}

		if err := userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to change password")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", userID))

	return nil
}
