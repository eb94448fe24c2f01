package impl

import (
	"context"
	"testing"
	"time"

	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/domain/service"
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

type webhookFixtures struct {
	service    usecase.WebhookUsecase
	verifier   *mockSvc.MockWebhookVerifier
	userRepo   *mockRepo.MockUserRepository
	reconciler *mockUsecase.MockIdentityReconciler
	cache      *mockSvc.MockProfileCache
	publisher  *mockSvc.MockEventPublisher
	metrics    *mockSvc.MockAuthMetrics
}

func createTestWebhookService(t *testing.T) webhookFixtures {
	fx := webhookFixtures{
		verifier:   mockSvc.NewMockWebhookVerifier(t),
		userRepo:   mockRepo.NewMockUserRepository(t),
		reconciler: mockUsecase.NewMockIdentityReconciler(t),
		cache:      mockSvc.NewMockProfileCache(t),
		publisher:  mockSvc.NewMockEventPublisher(t),
		metrics:    mockSvc.NewMockAuthMetrics(t),
	}
	fx.service = NewWebhookService(WebhookServiceParams{
		Verifier:   fx.verifier,
		UserRepo:   fx.userRepo,
		Reconciler: fx.reconciler,
		Cache:      fx.cache,
		Publisher:  fx.publisher,
		Metrics:    fx.metrics,
		Logger:     newDiscardLogger(),
	})

	return fx
}

var testHeaders = service.WebhookHeaders{ID: "msg_1", Timestamp: "1700000000", Signature: "v1,abc"}

const userPayload = `{"id":"user_1","email_addresses":[{"id":"idn_1","email_address":"ana@example.com"}],` +
	`"primary_email_address_id":"idn_1","first_name":"Ana","last_name":"B"}`

func TestWebhookService_RejectsBadSignature(t *testing.T) {
	fx := createTestWebhookService(t)
	payload := []byte(`{"type":"user.created","data":{}}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(domainerrors.ErrWebhookSignatureInvalid)
	fx.metrics.EXPECT().ObserveWebhook("", "rejected").Return()

	eventType, err := fx.service.Process(context.Background(), testHeaders, payload)

	assert.Empty(t, eventType)
	assert.ErrorIs(t, err, domainerrors.ErrWebhookSignatureInvalid)
}

func TestWebhookService_MalformedPayload(t *testing.T) {
	fx := createTestWebhookService(t)
	payload := []byte(`not json`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.metrics.EXPECT().ObserveWebhook("", "rejected").Return()

	_, err := fx.service.Process(context.Background(), testHeaders, payload)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestWebhookService_UserCreated(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.created","data":` + userPayload + `}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.reconciler.EXPECT().
		Reconcile(mock.Anything, "user_1", mock.MatchedBy(func(p *entity.ExternalProfile) bool {
			return p.PrimaryEmail() == "ana@example.com" && p.DisplayName("", "") == "Ana B"
		})).
		Return(&entity.User{ID: uuid.New()}, nil)
	fx.metrics.EXPECT().ObserveWebhook("user.created", "processed").Return()

	eventType, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
	assert.Equal(t, "user.created", eventType)
}

func TestWebhookService_UserCreated_ReconcileFails(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.created","data":` + userPayload + `}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", mock.Anything).Return(nil, domainerrors.ErrReconciliationFailed)
	fx.metrics.EXPECT().ObserveWebhook("user.created", "failed").Return()

	eventType, err := fx.service.Process(ctx, testHeaders, payload)

	assert.Equal(t, "user.created", eventType)
	assert.ErrorIs(t, err, domainerrors.ErrWebhookProcessingFailed)
}

func TestWebhookService_UserUpdated_SyncsFields(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.updated","data":` + userPayload + `}`)
	existing := &entity.User{ID: uuid.New(), Email: "old@example.com", Name: "Old", ExternalID: strPtr("user_1"), IsActive: false}

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(existing, nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.userRepo.EXPECT().SyncIdentity(mock.Anything, existing.ID, "Ana B", "ana@example.com").Return(nil)
	fx.publisher.EXPECT().
		PublishIdentityEvent(mock.Anything, mock.MatchedBy(func(e *service.IdentityEvent) bool {
			return e.Type == service.IdentityEventSynced && e.ExternalID == "user_1"
		})).
		Return(nil)
	fx.metrics.EXPECT().ObserveWebhook("user.updated", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
	assert.Equal(t, "Ana B", existing.Name)
	assert.Equal(t, "ana@example.com", existing.Email)
	assert.False(t, existing.IsActive)
}

func TestWebhookService_UserUpdated_NoChanges(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.updated","data":` + userPayload + `}`)
	existing := &entity.User{ID: uuid.New(), Email: "ana@example.com", Name: "Ana B", ExternalID: strPtr("user_1"), IsActive: true}

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(existing, nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.metrics.EXPECT().ObserveWebhook("user.updated", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
}

func TestWebhookService_UserUpdated_UnknownSubjectIsCreated(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.updated","data":` + userPayload + `}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(nil, repository.ErrUserNotFound)
	fx.reconciler.EXPECT().Reconcile(mock.Anything, "user_1", mock.Anything).Return(&entity.User{ID: uuid.New()}, nil)
	fx.metrics.EXPECT().ObserveWebhook("user.updated", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
}

func TestWebhookService_UserDeleted_Deactivates(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.deleted","data":{"id":"user_1","deleted":true,"object":"user"}}`)
	existing := &entity.User{ID: uuid.New(), Email: "ana@example.com", ExternalID: strPtr("user_1"), IsActive: true}

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(existing, nil)
	fx.userRepo.EXPECT().Deactivate(mock.Anything, existing.ID).Return(true, nil)
	fx.publisher.EXPECT().
		PublishIdentityEvent(mock.Anything, mock.MatchedBy(func(e *service.IdentityEvent) bool {
			return e.Type == service.IdentityEventDeactivated
		})).
		Return(nil)
	fx.metrics.EXPECT().ObserveWebhook("user.deleted", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
	assert.False(t, existing.IsActive)
	assert.Equal(t, "ana@example.com", existing.Email)
}

func TestWebhookService_UserDeleted_AlreadyInactive(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`)
	existing := &entity.User{ID: uuid.New(), ExternalID: strPtr("user_1"), IsActive: true}

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(existing, nil)
	fx.userRepo.EXPECT().Deactivate(mock.Anything, existing.ID).Return(false, nil)
	fx.metrics.EXPECT().ObserveWebhook("user.deleted", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
	fx.publisher.AssertNotCalled(t, "PublishIdentityEvent", mock.Anything, mock.Anything)
}

func TestWebhookService_DispatchIsBounded(t *testing.T) {
	fx := createTestWebhookService(t)
	fx.service.(*webhookService).storageTimeout = 20 * time.Millisecond
	payload := []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").
		RunAndReturn(func(ctx context.Context, _ string) (*entity.User, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})
	fx.metrics.EXPECT().ObserveWebhook("user.deleted", "failed").Return()

	_, err := fx.service.Process(context.Background(), testHeaders, payload)

	assert.ErrorIs(t, err, domainerrors.ErrWebhookProcessingFailed)
}

func TestWebhookService_UserDeleted_UnknownSubject(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.deleted","data":{"id":"user_9","deleted":true}}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_9").Return()
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_9").Return(nil, repository.ErrUserNotFound)
	fx.metrics.EXPECT().ObserveWebhook("user.deleted", "processed").Return()

	_, err := fx.service.Process(ctx, testHeaders, payload)

	require.NoError(t, err)
}

func TestWebhookService_UserDeleted_StorageFailure(t *testing.T) {
	fx := createTestWebhookService(t)
	ctx := context.Background()
	payload := []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.cache.EXPECT().Delete(mock.Anything, "user_1").Return()
	fx.userRepo.EXPECT().FindByExternalID(mock.Anything, "user_1").Return(nil, errors.New("db down"))
	fx.metrics.EXPECT().ObserveWebhook("user.deleted", "failed").Return()

	eventType, err := fx.service.Process(ctx, testHeaders, payload)

	assert.Equal(t, "user.deleted", eventType)
	assert.ErrorIs(t, err, domainerrors.ErrWebhookProcessingFailed)
}

func TestWebhookService_OtherEventsAreAcknowledged(t *testing.T) {
	fx := createTestWebhookService(t)
	payload := []byte(`{"type":"session.created","data":{"id":"sess_1"}}`)

	fx.verifier.EXPECT().Verify(testHeaders, payload).Return(nil)
	fx.metrics.EXPECT().ObserveWebhook("session.created", "ignored").Return()

	eventType, err := fx.service.Process(context.Background(), testHeaders, payload)

	require.NoError(t, err)
	assert.Equal(t, "session.created", eventType)
}
