package usecase

import (
	"context"

	"midatopay/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the optional self-service profile fields.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)
}
