package repository

import "context"

// TransactionManager runs usecase steps atomically without exposing the storage driver.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. fn's error is
	// returned as-is.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
}
