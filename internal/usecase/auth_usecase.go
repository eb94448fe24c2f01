// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"midatopay/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a merchant account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to rotate a local password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// AuthOutput is returned by register and login.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase defines the local credential operations.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
}
