package postgres

import (
	"context"

	"midatopay/internal/domain/repository"
	"midatopay/internal/errors"

	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// txFactory hands out repositories bound to one open transaction.
type txFactory struct {
	tx *gorm.DB
}

func (f txFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// NewTransactionManager returns a TransactionManager backed by gorm transactions.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute commits when fn succeeds and rolls back on error or panic. Errors from fn
// are returned unwrapped so callers can match repository sentinels.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txFactory{tx: tx})

		return fnErr
	})

	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return errors.Wrap(err, "transaction failed")
	}
}
