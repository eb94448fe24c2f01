package impl

import (
	"context"
	"log/slog"
	"time"

	"midatopay/config"
	deliverycontext "midatopay/internal/delivery/context"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/domain/service"
	"midatopay/internal/errors"
	"midatopay/internal/usecase"

	"go.uber.org/fx"
)

// authenticator is the hybrid authentication gate.
//
// Tokens of at least externalMinLength characters are tried against the external
// provider first. The length check is a compatibility heuristic kept for existing
// clients: it only orders the attempts, and a failed external attempt always falls
// through to local verification.
type authenticator struct {
	userRepo          repository.UserRepository
	tokenService      service.TokenService
	idp               service.IdentityProvider
	reconciler        usecase.IdentityReconciler
	metrics           service.AuthMetrics
	externalMinLength int
	externalTimeout   time.Duration
	storageTimeout    time.Duration
	logger            *slog.Logger
}

// AuthenticatorParams holds dependencies for the gate, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	IDP          service.IdentityProvider `optional:"true"`
	Reconciler   usecase.IdentityReconciler
	Metrics      service.AuthMetrics `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthenticator creates the hybrid authentication gate.
func NewAuthenticator(params AuthenticatorParams) usecase.Authenticator {
	gate := &authenticator{
		userRepo:          params.UserRepo,
		tokenService:      params.TokenService,
		idp:               params.IDP,
		reconciler:        params.Reconciler,
		metrics:           metricsOrNoop(params.Metrics),
		externalMinLength: 100,
		externalTimeout:   5 * time.Second,
		storageTimeout:    storageTimeout(params.Config),
		logger:            params.Logger,
	}

	if cfg := params.Config; cfg != nil {
		if cfg.Auth != nil && cfg.Auth.ExternalTokenMinLength > 0 {
			gate.externalMinLength = cfg.Auth.ExternalTokenMinLength
		}
		if cfg.Clerk != nil && cfg.Clerk.Timeout > 0 {
			gate.externalTimeout = cfg.Clerk.Timeout
		}
	}

	return gate
}

func (a *authenticator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

// Authenticate runs the full gate.
func (a *authenticator) Authenticate(ctx context.Context, token string) *usecase.AuthOutcome {
	if token == "" {
		return a.observe(missingCredential())
	}

	if a.externalCandidate(token) {
		if outcome, handled := a.authenticateExternal(ctx, token); handled {
			return a.observe(outcome)
		}
	}

	return a.observe(a.authenticateLocal(ctx, token))
}

// AuthenticateLocal runs only the local branch of the gate.
func (a *authenticator) AuthenticateLocal(ctx context.Context, token string) *usecase.AuthOutcome {
	if token == "" {
		return a.observe(missingCredential())
	}

	return a.observe(a.authenticateLocal(ctx, token))
}

func (a *authenticator) externalCandidate(token string) bool {
	return a.idp != nil && a.idp.Enabled() && len(token) >= a.externalMinLength
}

// authenticateExternal returns handled=false when the token should fall through to the
// local branch: verification or profile fetch failed, or the provider timed out.
func (a *authenticator) authenticateExternal(ctx context.Context, token string) (*usecase.AuthOutcome, bool) {
	extCtx, cancel := context.WithTimeout(ctx, a.externalTimeout)
	defer cancel()

	identity, err := a.idp.VerifyToken(extCtx, token)
	if err != nil {
		a.log(ctx).Debug("External verification failed, falling back to local", slog.Any("error", err))

		return nil, false
	}

	profile, err := a.idp.FetchProfile(extCtx, identity.SubjectID)
	if err != nil {
		a.log(ctx).Warn("External profile fetch failed, falling back to local",
			slog.String("subjectID", identity.SubjectID),
			slog.Any("error", err))

		return nil, false
	}

	storeCtx, cancelStore := context.WithTimeout(ctx, a.storageTimeout)
	defer cancelStore()

	user, err := a.reconciler.Reconcile(storeCtx, identity.SubjectID, profile)
	if err != nil {
		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeReconciliationFailed,
			Path: usecase.AuthPathExternal,
			Err:  err,
		}, true
	}

	if !user.IsActive {
		a.log(ctx).Info("Rejected inactive user", slog.Any("userID", user.ID), slog.String("path", "external"))

		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeInvalidUser,
			Path: usecase.AuthPathExternal,
			Err:  domainerrors.ErrInvalidUser,
		}, true
	}

	return &usecase.AuthOutcome{
		Kind:    usecase.OutcomeAuthenticated,
		Path:    usecase.AuthPathExternal,
		User:    user,
		Profile: profile,
	}, true
}

func (a *authenticator) authenticateLocal(ctx context.Context, token string) *usecase.AuthOutcome {
	claims, err := a.tokenService.Verify(token)
	if err != nil {
		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeInvalidCredential,
			Path: usecase.AuthPathLocal,
			Err:  err,
		}
	}

	storeCtx, cancel := context.WithTimeout(ctx, a.storageTimeout)
	defer cancel()

	user, err := a.userRepo.FindByID(storeCtx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeInvalidUser,
			Path: usecase.AuthPathLocal,
			Err:  domainerrors.ErrInvalidUser,
		}
	}
	if err != nil {
		a.log(ctx).Error("User lookup failed during authentication", slog.Any("userID", claims.UserID), slog.Any("error", err))

		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeInternalError,
			Path: usecase.AuthPathLocal,
			Err:  errors.Wrap(err, "find user by id"),
		}
	}

	if !user.IsActive {
		a.log(ctx).Info("Rejected inactive user", slog.Any("userID", user.ID), slog.String("path", "local"))

		return &usecase.AuthOutcome{
			Kind: usecase.OutcomeInvalidUser,
			Path: usecase.AuthPathLocal,
			Err:  domainerrors.ErrInvalidUser,
		}
	}

	return &usecase.AuthOutcome{
		Kind: usecase.OutcomeAuthenticated,
		Path: usecase.AuthPathLocal,
		User: user,
	}
}

func (a *authenticator) observe(outcome *usecase.AuthOutcome) *usecase.AuthOutcome {
	result := "authenticated"
	if outcome.Kind != usecase.OutcomeAuthenticated {
		result = "error"
		if appErr, ok := errors.Find[domainerrors.AppError](outcome.Err); ok {
			result = appErr.ErrorCode()
		}
	}
	a.metrics.ObserveAuthentication(string(outcome.Path), result)

	return outcome
}

func missingCredential() *usecase.AuthOutcome {
	return &usecase.AuthOutcome{
		Kind: usecase.OutcomeMissingCredential,
		Path: usecase.AuthPathNone,
		Err:  domainerrors.ErrMissingCredential,
	}
}
