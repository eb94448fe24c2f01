package impl

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/infra/auth"
	"midatopay/internal/infra/persistence/model"
	"midatopay/internal/infra/persistence/postgres"
	mockSvc "midatopay/internal/mocks/service"
	"midatopay/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// identityStack wires the services over an in-memory database with real credential services.
type identityStack struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	auth       usecase.AuthUsecase
	profiles   usecase.ProfileUsecase
	reconciler usecase.IdentityReconciler
	gate       usecase.Authenticator
	webhooks   usecase.WebhookUsecase
	idp        *mockSvc.MockIdentityProvider
}

func newIdentityStack(t *testing.T) *identityStack {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.UserModel{}))

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := postgres.NewUserRepository(db)
	txManager := postgres.NewTransactionManager(db)
	log := newDiscardLogger()

	verifier := mockSvc.NewMockWebhookVerifier(t)
	verifier.EXPECT().Verify(mock.Anything, mock.Anything).Return(nil).Maybe()

	idp := mockSvc.NewMockIdentityProvider(t)

	reconciler := NewReconciler(ReconcilerParams{UserRepo: userRepo, Config: cfg, Logger: log})

	return &identityStack{
		db:       db,
		userRepo: userRepo,
		auth: NewAuthService(AuthServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			Hasher:       auth.NewBcryptHasherWithCost(4),
			TokenService: tokens,
			Logger:       log,
		}),
		profiles:   NewProfileService(txManager, log),
		reconciler: reconciler,
		gate: NewAuthenticator(AuthenticatorParams{
			UserRepo:     userRepo,
			TokenService: tokens,
			IDP:          idp,
			Reconciler:   reconciler,
			Config:       cfg,
			Logger:       log,
		}),
		webhooks: NewWebhookService(WebhookServiceParams{
			Verifier:   verifier,
			UserRepo:   userRepo,
			Reconciler: reconciler,
			Logger:     log,
		}),
		idp: idp,
	}
}

func (s *identityStack) countUsers(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, s.db.Model(&model.UserModel{}).Count(&count).Error)

	return count
}

func (s *identityStack) deliver(t *testing.T, payload string) {
	t.Helper()

	_, err := s.webhooks.Process(context.Background(), testHeaders, []byte(payload))
	require.NoError(t, err)
}

func TestFlow_RegisterLoginAndGateResolveSameUser(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()
	// local credentials exceed the length threshold too and fall through after the provider rejects them
	stack.idp.EXPECT().Enabled().Return(true)
	stack.idp.EXPECT().VerifyToken(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidExternalCredential)

	registered, err := stack.auth.Register(ctx, usecase.RegisterInput{Email: "Shop@Example.com", Password: "secret1", Name: "Shop"})
	require.NoError(t, err)

	loggedIn, err := stack.auth.Login(ctx, usecase.LoginInput{Email: "shop@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	outcome := stack.gate.Authenticate(ctx, loggedIn.Token)
	require.True(t, outcome.Authenticated())
	assert.Equal(t, registered.User.ID, outcome.User.ID)
	assert.Equal(t, usecase.AuthPathLocal, outcome.Path)
}

func TestFlow_WrongPasswordLeavesRowUntouched(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	registered, err := stack.auth.Register(ctx, usecase.RegisterInput{Email: "shop@example.com", Password: "secret1", Name: "Shop"})
	require.NoError(t, err)
	before, err := stack.userRepo.FindByID(ctx, registered.User.ID)
	require.NoError(t, err)

	_, err = stack.auth.Login(ctx, usecase.LoginInput{Email: "shop@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	after, err := stack.userRepo.FindByID(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}

func TestFlow_ConcurrentFirstSightYieldsOneRow(t *testing.T) {
	stack := newIdentityStack(t)
	profile := testProfile("user_1")

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := stack.reconciler.Reconcile(context.Background(), "user_1", profile)
			errs[i] = err
			if err == nil {
				ids[i] = user.ID.String()
			}
		}(i)
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), stack.countUsers(t))
}

func TestFlow_CreatedEventRacingGateYieldsOneRow(t *testing.T) {
	stack := newIdentityStack(t)
	profile := testProfile("user_1")
	payload := []byte(`{"type":"user.created","data":{"id":"user_1","first_name":"Ana","last_name":"B",` +
		`"email_addresses":[{"id":"idn_1","email_address":"ana@example.com"}],"primary_email_address_id":"idn_1"}}`)

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = stack.webhooks.Process(context.Background(), testHeaders, payload)

				return
			}
			_, errs[i] = stack.reconciler.Reconcile(context.Background(), "user_1", profile)
		}(i)
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
	}
	assert.Equal(t, int64(1), stack.countUsers(t))

	user, err := stack.userRepo.FindByExternalID(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestFlow_ProfileEditsAroundDeletionKeepRowInactive(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	stack.deliver(t, `{"type":"user.created","data":{"id":"user_7","first_name":"A","last_name":"B",`+
		`"email_addresses":[{"id":"idn_1","email_address":"ab@example.com"}]}}`)
	created, err := stack.userRepo.FindByExternalID(ctx, "user_7")
	require.NoError(t, err)

	_, err = stack.profiles.UpdateProfile(ctx, created.ID, usecase.UpdateProfileInput{Phone: strPtr("+5491155550000")})
	require.NoError(t, err)

	stack.deliver(t, `{"type":"user.deleted","data":{"id":"user_7","deleted":true}}`)

	updated, err := stack.profiles.UpdateProfile(ctx, created.ID, usecase.UpdateProfileInput{Name: strPtr("New Name")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+5491155550000", *updated.Phone)
	assert.Equal(t, "ab@example.com", updated.Email)
}

func TestFlow_LocalUserLaterSeenExternallyKeepsID(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	registered, err := stack.auth.Register(ctx, usecase.RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
	require.NoError(t, err)

	externalToken := fmt.Sprintf("%0120d", 7)
	profile := testProfile("user_1")
	stack.idp.EXPECT().Enabled().Return(true)
	stack.idp.EXPECT().VerifyToken(mock.Anything, externalToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
	stack.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(profile, nil)

	outcome := stack.gate.Authenticate(ctx, externalToken)

	require.True(t, outcome.Authenticated())
	assert.Equal(t, usecase.AuthPathExternal, outcome.Path)
	assert.Equal(t, registered.User.ID, outcome.User.ID)
	require.NotNil(t, outcome.User.ExternalID)
	assert.Equal(t, "user_1", *outcome.User.ExternalID)
	assert.Equal(t, int64(1), stack.countUsers(t))

	// the local credential keeps working after linking
	_, err = stack.auth.Login(ctx, usecase.LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestFlow_UserCreatedEventProvisionsMerchant(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	stack.deliver(t, `{"type":"user.created","data":{"id":"user_7","first_name":"A","last_name":"B",`+
		`"email_addresses":[{"id":"idn_1","email_address":"ab@example.com"}],"primary_email_address_id":"idn_1"}}`)

	user, err := stack.userRepo.FindByExternalID(ctx, "user_7")
	require.NoError(t, err)
	assert.Equal(t, "A B", user.Name)
	assert.Equal(t, "ab@example.com", user.Email)
	assert.Equal(t, entity.RoleMerchant, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.HasLocalCredential())
}

func TestFlow_DeletedThenUpdatedKeepsRowInactive(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	stack.deliver(t, `{"type":"user.created","data":{"id":"user_7","first_name":"A","last_name":"B",`+
		`"email_addresses":[{"id":"idn_1","email_address":"ab@example.com"}]}}`)
	created, err := stack.userRepo.FindByExternalID(ctx, "user_7")
	require.NoError(t, err)

	stack.deliver(t, `{"type":"user.deleted","data":{"id":"user_7","deleted":true}}`)
	deleted, err := stack.userRepo.FindByExternalID(ctx, "user_7")
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, int64(1), stack.countUsers(t))

	stack.deliver(t, `{"type":"user.updated","data":{"id":"user_7","first_name":"Ada","last_name":"B",`+
		`"email_addresses":[{"id":"idn_1","email_address":"ab@example.com"}]}}`)
	updated, err := stack.userRepo.FindByExternalID(ctx, "user_7")
	require.NoError(t, err)
	assert.Equal(t, "Ada B", updated.Name)
	assert.False(t, updated.IsActive)
}

func TestFlow_InactiveUserFailsBothGatePaths(t *testing.T) {
	stack := newIdentityStack(t)
	ctx := context.Background()

	registered, err := stack.auth.Register(ctx, usecase.RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, stack.userRepo.LinkExternalID(ctx, registered.User.ID, "user_1"))
	_, err = stack.userRepo.Deactivate(ctx, registered.User.ID)
	require.NoError(t, err)

	local := stack.gate.AuthenticateLocal(ctx, registered.Token)
	assert.Equal(t, usecase.OutcomeInvalidUser, local.Kind)

	externalToken := fmt.Sprintf("%0120d", 9)
	stack.idp.EXPECT().Enabled().Return(true)
	stack.idp.EXPECT().VerifyToken(mock.Anything, externalToken).Return(&entity.ExternalIdentity{SubjectID: "user_1"}, nil)
	stack.idp.EXPECT().FetchProfile(mock.Anything, "user_1").Return(testProfile("user_1"), nil)

	external := stack.gate.Authenticate(ctx, externalToken)
	assert.Equal(t, usecase.OutcomeInvalidUser, external.Kind)
	assert.ErrorIs(t, external.Err, domainerrors.ErrInvalidUser)
}
