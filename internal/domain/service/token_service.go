package service

import (
	"time"

	"midatopay/internal/domain/entity"
)

// TokenService issues and verifies locally signed credentials.
type TokenService interface {
	// Generate signs a credential carrying the user's id and email.
	Generate(user *entity.User) (string, error)

	// Verify returns the claims of a valid credential. Failures are
	// domainerrors.ErrMissingCredential, ErrInvalidLocalCredential or ErrExpiredLocalCredential.
	Verify(token string) (*entity.LocalClaims, error)

	// TTL returns the lifetime of issued credentials.
	TTL() time.Duration
}
