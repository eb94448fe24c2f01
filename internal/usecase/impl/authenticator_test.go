package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	mockRepo "midatopay/internal/mocks/repository"
	mockSvc "midatopay/internal/mocks/service"
	mockUsecase "midatopay/internal/mocks/usecase"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authenticatorFixtures struct {
	gate         usecase.Authenticator
	userRepo     *mockRepo.MockUserRepository
	tokenService *mockSvc.MockTokenService
	idp          *mockSvc.MockIdentityProvider
	reconciler   *mockUsecase.MockIdentityReconciler
	metrics      *mockSvc.MockAuthMetrics
}

func createTestAuthenticator(t *testing.T) authenticatorFixtures {
	fx := authenticatorFixtures{
		userRepo:     mockRepo.NewMockUserRepository(t),
		tokenService: mockSvc.NewMockTokenService(t),
		idp:          mockSvc.NewMockIdentityProvider(t),
		reconciler:   mockUsecase.NewMockIdentityReconciler(t),
		metrics:      mockSvc.NewMockAuthMetrics(t),
	}
	fx.gate = NewAuthenticator(AuthenticatorParams{
		UserRepo:     fx.userRepo,
		TokenService: fx.tokenService,
		IDP:          fx.idp,
		Reconciler:   fx.reconciler,
		Metrics:      fx.metrics,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return fx
}

var (
	shortToken = "local.jwt.token"
	longToken  = strings.Repeat("x", 120)
)

func TestAuthenticator_MissingToken(t *testing.T) {
	fx := createTestAuthenticator(t)
	fx.metrics.EXPECT().ObserveAuthentication("none", "MISSING_TOKEN").Return()

	outcome := fx.gate.Authenticate(context.Background(), "")

	assert.Equal(t, usecase.OutcomeMissingCredential, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domainerrors.ErrMissingCredential)
	assert.False(t, outcome.Authenticated())
}

func TestAuthenticator_LocalSuccess(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "m@example.com", IsActive: true}

	fx.idp.EXPECT().Enabled().Return(true).Maybe()
	fx.tokenService.EXPECT().Verify(shortToken).Return(&entity.LocalClaims{UserID: user.ID, Email: user.Email}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)
	fx.metrics.EXPECT().ObserveAuthentication("local", "authenticated").Return()

	outcome := fx.gate.Authenticate(ctx, shortToken)

	require.True(t, outcome.Authenticated())
	assert.Equal(t, usecase.AuthPathLocal, outcome.Path)
	assert.Same(t, user, outcome.User)
	assert.Nil(t, outcome.Profile)
}

func TestAuthenticator_ShortTokenNeverReachesExternalVerifier(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.idp.EXPECT().Enabled().Return(true).Maybe()
	fx.tokenService.EXPECT().Verify(shortToken).Return(nil, domainerrors.ErrInvalidLocalCredential)
	fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_TOKEN").Return()

	outcome := fx.gate.Authenticate(ctx, shortToken)

	assert.Equal(t, usecase.OutcomeInvalidCredential, outcome.Kind)
	fx.idp.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthenticator_ExpiredLocalToken(t *testing.T) {
	fx := createTestAuthenticator(t)

	fx.idp.EXPECT().Enabled().Return(false).Maybe()
	fx.tokenService.EXPECT().Verify(shortToken).Return(nil, domainerrors.ErrExpiredLocalCredential.WrapMessage("token has expired"))
	fx.metrics.EXPECT().ObserveAuthentication("local", "TOKEN_EXPIRED").Return()

	outcome := fx.gate.Authenticate(context.Background(), shortToken)

	assert.Equal(t, usecase.OutcomeInvalidCredential, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domainerrors.ErrExpiredLocalCredential)
}

func TestAuthenticator_ExternalSuccess(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()
	profile := testProfile("user_1")
	user := &entity.User{ID: uuid.New(), Email: "ana@example.com", ExternalID: strPtr("user_1"), IsActive: true}

	fx.idp.EXPECT().Enabled().Return(true)
	fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).
		Run(func(ctx context.Context, _ string) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).
		Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
	fx.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(profile, nil)
	fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", profile).Return(user, nil)
	fx.metrics.EXPECT().ObserveAuthentication("external", "authenticated").Return()

	outcome := fx.gate.Authenticate(ctx, longToken)

	require.True(t, outcome.Authenticated())
	assert.Equal(t, usecase.AuthPathExternal, outcome.Path)
	assert.Same(t, user, outcome.User)
	assert.Same(t, profile, outcome.Profile)
}

func TestAuthenticator_ExternalFailureFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name   string
		expect func(fx authenticatorFixtures)
	}{
		{
			name: "verification fails",
			expect: func(fx authenticatorFixtures) {
				fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).Return(nil, domainerrors.ErrInvalidExternalCredential)
			},
		},
		{
			name: "profile fetch fails",
			expect: func(fx authenticatorFixtures) {
				fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
				fx.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(nil, context.DeadlineExceeded)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthenticator(t)
			ctx := context.Background()
			user := &entity.User{ID: uuid.New(), IsActive: true}

			fx.idp.EXPECT().Enabled().Return(true)
			tt.expect(fx)
			fx.tokenService.EXPECT().Verify(longToken).Return(&entity.LocalClaims{UserID: user.ID}, nil)
			fx.userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)
			fx.metrics.EXPECT().ObserveAuthentication("local", "authenticated").Return()

			outcome := fx.gate.Authenticate(ctx, longToken)

			require.True(t, outcome.Authenticated())
			assert.Equal(t, usecase.AuthPathLocal, outcome.Path)
		})
	}
}

func TestAuthenticator_ExternalTimeoutFallsBack(t *testing.T) {
	fx := createTestAuthenticator(t)
	fx.gate.(*authenticator).externalTimeout = 20 * time.Millisecond
	ctx := context.Background()

	fx.idp.EXPECT().Enabled().Return(true)
	fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).
		RunAndReturn(func(ctx context.Context, _ string) (*entity.ExternalIdentity, error) {
			<-ctx.Done()

			return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage(ctx.Err().Error())
		})
	fx.tokenService.EXPECT().Verify(longToken).Return(nil, domainerrors.ErrInvalidLocalCredential)
	fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_TOKEN").Return()

	outcome := fx.gate.Authenticate(ctx, longToken)

	assert.Equal(t, usecase.OutcomeInvalidCredential, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domainerrors.ErrInvalidLocalCredential)
}

func TestAuthenticator_ReconciliationFailure(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()
	profile := testProfile("user_1")

	fx.idp.EXPECT().Enabled().Return(true)
	fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
	fx.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(profile, nil)
	fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", profile).Return(nil, domainerrors.ErrReconciliationFailed.WrapMessage("db down"))
	fx.metrics.EXPECT().ObserveAuthentication("external", "RECONCILIATION_FAILED").Return()

	outcome := fx.gate.Authenticate(ctx, longToken)

	assert.Equal(t, usecase.OutcomeReconciliationFailed, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, domainerrors.ErrReconciliationFailed)
	fx.tokenService.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestAuthenticator_InactiveUserRejectedOnBothPaths(t *testing.T) {
	inactive := &entity.User{ID: uuid.New(), Email: "ana@example.com", ExternalID: strPtr("user_1"), IsActive: false}

	t.Run("external", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		ctx := context.Background()
		profile := testProfile("user_1")

		fx.idp.EXPECT().Enabled().Return(true)
		fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
		fx.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(profile, nil)
		fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", profile).Return(inactive, nil)
		fx.metrics.EXPECT().ObserveAuthentication("external", "INVALID_USER").Return()

		outcome := fx.gate.Authenticate(ctx, longToken)

		assert.Equal(t, usecase.OutcomeInvalidUser, outcome.Kind)
		assert.ErrorIs(t, outcome.Err, domainerrors.ErrInvalidUser)
		assert.Nil(t, outcome.User)
	})

	t.Run("local", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		ctx := context.Background()

		fx.tokenService.EXPECT().Verify(shortToken).Return(&entity.LocalClaims{UserID: inactive.ID}, nil)
		fx.userRepo.EXPECT().FindByID(mock.Anything, inactive.ID).Return(inactive, nil)
		fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_USER").Return()

		outcome := fx.gate.AuthenticateLocal(ctx, shortToken)

		assert.Equal(t, usecase.OutcomeInvalidUser, outcome.Kind)
		assert.Nil(t, outcome.User)
	})
}

func TestAuthenticator_LocalUserMissingOrStorageError(t *testing.T) {
	userID := uuid.New()

	t.Run("deleted user", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		ctx := context.Background()

		fx.tokenService.EXPECT().Verify(shortToken).Return(&entity.LocalClaims{UserID: userID}, nil)
		fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)
		fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_USER").Return()

		outcome := fx.gate.AuthenticateLocal(ctx, shortToken)

		assert.Equal(t, usecase.OutcomeInvalidUser, outcome.Kind)
	})

	t.Run("storage error", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		ctx := context.Background()

		fx.tokenService.EXPECT().Verify(shortToken).Return(&entity.LocalClaims{UserID: userID}, nil)
		fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, errors.New("connection reset"))
		fx.metrics.EXPECT().ObserveAuthentication("local", "error").Return()

		outcome := fx.gate.AuthenticateLocal(ctx, shortToken)

		assert.Equal(t, usecase.OutcomeInternalError, outcome.Kind)
		assert.Error(t, outcome.Err)
	})
}

func TestAuthenticator_LocalOnlyIgnoresExternalProvider(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.tokenService.EXPECT().Verify(longToken).Return(nil, domainerrors.ErrInvalidLocalCredential)
	fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_TOKEN").Return()

	outcome := fx.gate.AuthenticateLocal(ctx, longToken)

	assert.Equal(t, usecase.OutcomeInvalidCredential, outcome.Kind)
	fx.idp.AssertNotCalled(t, "Enabled")
	fx.idp.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestAuthenticator_DisabledProviderUsesLocal(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.idp.EXPECT().Enabled().Return(false)
	fx.tokenService.EXPECT().Verify(longToken).Return(nil, domainerrors.ErrInvalidLocalCredential)
	fx.metrics.EXPECT().ObserveAuthentication("local", "INVALID_TOKEN").Return()

	outcome := fx.gate.Authenticate(ctx, longToken)

	assert.Equal(t, usecase.OutcomeInvalidCredential, outcome.Kind)
}

func TestAuthenticator_StorageCallsAreBounded(t *testing.T) {
	blockUntilDone := func(ctx context.Context) error {
		<-ctx.Done()

		return ctx.Err()
	}

	t.Run("local lookup", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		fx.gate.(*authenticator).storageTimeout = 20 * time.Millisecond
		userID := uuid.New()

		fx.tokenService.EXPECT().Verify(shortToken).Return(&entity.LocalClaims{UserID: userID}, nil)
		fx.userRepo.EXPECT().FindByID(mock.Anything, userID).
			RunAndReturn(func(ctx context.Context, _ uuid.UUID) (*entity.User, error) {
				return nil, blockUntilDone(ctx)
			})
		fx.metrics.EXPECT().ObserveAuthentication("local", "error").Return()

		outcome := fx.gate.AuthenticateLocal(context.Background(), shortToken)

		assert.Equal(t, usecase.OutcomeInternalError, outcome.Kind)
		assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	})

	t.Run("external reconciliation", func(t *testing.T) {
		fx := createTestAuthenticator(t)
		fx.gate.(*authenticator).storageTimeout = 20 * time.Millisecond
		profile := testProfile("user_1")

		fx.idp.EXPECT().Enabled().Return(true)
		fx.idp.EXPECT().VerifyToken(mock.Anything, longToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
		fx.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(profile, nil)
		fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", profile).
			RunAndReturn(func(ctx context.Context, _ string, _ *entity.ExternalProfile) (*entity.User, error) {
				return nil, domainerrors.ErrReconciliationFailed.WrapMessage(blockUntilDone(ctx).Error())
			})
		fx.metrics.EXPECT().ObserveAuthentication("external", "RECONCILIATION_FAILED").Return()

		done := make(chan *usecase.AuthOutcome, 1)
		go func() { done <- fx.gate.Authenticate(context.Background(), longToken) }()

		select {
		case outcome := <-done:
			assert.Equal(t, usecase.OutcomeReconciliationFailed, outcome.Kind)
		case <-time.After(2 * time.Second):
			t.Fatal("gate did not return after the storage timeout")
		}
	})
}
