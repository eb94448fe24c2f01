package usecase

import (
	"context"

	"midatopay/internal/domain/entity"
	"midatopay/internal/domain/service"
)

// IdentityReconciler maps an external subject onto exactly one canonical user,
// creating or linking the row on first sight.
type IdentityReconciler interface {
	Reconcile(ctx context.Context, subjectID string, profile *entity.ExternalProfile) (*entity.User, error)
}

// AuthPath names the branch of the gate that produced an outcome.
type AuthPath string

const (
	AuthPathNone     AuthPath = "none"
	AuthPathLocal    AuthPath = "local"
	AuthPathExternal AuthPath = "external"
)

// OutcomeKind is the terminal state of one gate run.
type OutcomeKind int

const (
	OutcomeAuthenticated OutcomeKind = iota
	OutcomeMissingCredential
	OutcomeInvalidCredential
	OutcomeInvalidUser
	OutcomeReconciliationFailed
	OutcomeInternalError
)

// AuthOutcome is the result of authenticating one bearer token. User is set only
// when Kind is OutcomeAuthenticated; Profile only on the external path.
type AuthOutcome struct {
	Kind    OutcomeKind
	Path    AuthPath
	User    *entity.User
	Profile *entity.ExternalProfile
	Err     error
}

// Authenticated reports whether the outcome carries a usable user.
func (o *AuthOutcome) Authenticated() bool {
	return o != nil && o.Kind == OutcomeAuthenticated && o.User != nil
}

// Authenticator resolves bearer tokens to canonical users.
type Authenticator interface {
	// Authenticate tries the external provider for provider-shaped tokens and falls
	// back to the local credential.
	Authenticate(ctx context.Context, token string) *AuthOutcome

	// AuthenticateLocal accepts only locally issued credentials.
	AuthenticateLocal(ctx context.Context, token string) *AuthOutcome
}

// WebhookUsecase authenticates and applies identity provider webhook deliveries.
type WebhookUsecase interface {
	// Process returns the event type once the delivery is verified and applied.
	Process(ctx context.Context, headers service.WebhookHeaders, payload []byte) (string, error)
}
