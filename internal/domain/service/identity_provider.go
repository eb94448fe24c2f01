package service

import (
	"context"

	"midatopay/internal/domain/entity"
)

// IdentityProvider verifies session tokens issued by the external identity provider
// and fetches the matching user profile.
type IdentityProvider interface {
	// Enabled reports whether the provider is configured. A disabled provider is never called.
	Enabled() bool

	// VerifyToken validates a session token. Every failure maps to
	// domainerrors.ErrInvalidExternalCredential.
	VerifyToken(ctx context.Context, token string) (*entity.ExternalIdentity, error)

	// FetchProfile loads the provider-side user object for a subject.
	FetchProfile(ctx context.Context, subjectID string) (*entity.ExternalProfile, error)
}

// WebhookVerifier authenticates provider webhook deliveries over the raw request body.
type WebhookVerifier interface {
	// Configured reports whether a signing secret is available.
	Configured() bool

	// Verify checks the delivery headers against payload.
	Verify(headers WebhookHeaders, payload []byte) error
}

// WebhookHeaders are the signature headers attached to a webhook delivery.
type WebhookHeaders struct {
	ID        string
	Timestamp string
	Signature string
}
