// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"midatopay/internal/domain/entity"
	"midatopay/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a write violates the email or external id uniqueness.
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByExternalID retrieves the user linked to an external provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)

	// FindByExternalIDOrEmail matches either key in a single query. A row linked to
	// externalID wins over a row that only matches on email.
	FindByExternalIDOrEmail(ctx context.Context, externalID, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	// Returns ErrDuplicateUser on a uniqueness violation.
	Create(ctx context.Context, user *entity.User) error

	// LinkExternalID sets the external subject on a row that has none yet.
	// Returns ErrDuplicateUser when the row is already linked or the subject is taken.
	LinkExternalID(ctx context.Context, id uuid.UUID, externalID string) error

	// UpdateProfile writes the non-nil fields only.
	UpdateProfile(ctx context.Context, id uuid.UUID, fields ProfileFields) error

	// UpdatePasswordHash replaces the local credential.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// SyncIdentity copies provider-owned name and email onto the row. Empty values are skipped.
	// Returns ErrDuplicateUser when the email belongs to another row.
	SyncIdentity(ctx context.Context, id uuid.UUID, name, email string) error

	// Deactivate soft-deletes the row. It reports false when the row was already inactive.
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProfileFields are the self-service columns of a user.
type ProfileFields struct {
	Name  *string
	Phone *string
}
