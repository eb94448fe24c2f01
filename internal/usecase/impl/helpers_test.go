package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"midatopay/config"
	"midatopay/internal/domain/repository"
	mockRepo "midatopay/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectTransaction makes txManager run the callback against userRepo.
func expectTransaction(t *testing.T, txManager *mockRepo.MockTransactionManager, userRepo repository.UserRepository) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewUserRepository().Return(userRepo)

			return fn(factory)
		})
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", ExpiresIn: 0},
		Auth:  &config.AuthConfig{BcryptCost: 4, ReconcileMaxAttempts: 3, ExternalTokenMinLength: 100},
		Clerk: &config.ClerkConfig{},
	}
}

func strPtr(s string) *string { return &s }
