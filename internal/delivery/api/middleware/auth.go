package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "midatopay/internal/delivery/context"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// AuthMiddleware guards routes with the hybrid gate or the local-only gate.
type AuthMiddleware struct {
	gate usecase.Authenticator
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(gate usecase.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// RequireAuth accepts provider-issued and locally issued credentials.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome := m.gate.Authenticate(c.Request().Context(), bearerToken(c))

		return m.proceed(c, next, outcome)
	}
}

// RequireLocal accepts only locally issued credentials.
func (m *AuthMiddleware) RequireLocal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome := m.gate.AuthenticateLocal(c.Request().Context(), bearerToken(c))

		return m.proceed(c, next, outcome)
	}
}

func (m *AuthMiddleware) proceed(c echo.Context, next echo.HandlerFunc, outcome *usecase.AuthOutcome) error {
	if !outcome.Authenticated() {
		return outcomeError(outcome)
	}

	deliverycontext.SetAuthUser(c, outcome.User)
	if outcome.Path == usecase.AuthPathExternal && outcome.Profile != nil {
		deliverycontext.SetExternalProfile(c, outcome.Profile)
	}

	ctx := c.Request().Context()
	if logger := deliverycontext.GetLogger(ctx); logger != nil {
		logger = logger.With(slog.String("user_id", outcome.User.ID.String()), slog.String("auth_path", string(outcome.Path)))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))
	}

	return next(c)
}

func outcomeError(outcome *usecase.AuthOutcome) error {
	if outcome != nil && outcome.Err != nil {
		return outcome.Err
	}
	if outcome == nil {
		return domainerrors.ErrInternalError
	}

	switch outcome.Kind {
	case usecase.OutcomeMissingCredential:
		return domainerrors.ErrMissingCredential
	case usecase.OutcomeInvalidCredential:
		return domainerrors.ErrInvalidLocalCredential
	case usecase.OutcomeInvalidUser, usecase.OutcomeAuthenticated:
		return domainerrors.ErrInvalidUser
	case usecase.OutcomeReconciliationFailed:
		return domainerrors.ErrReconciliationFailed
	default:
		return domainerrors.ErrInternalError
	}
}

// bearerToken returns the credential of an "Authorization: Bearer <token>" header,
// or an empty string.
func bearerToken(c echo.Context) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}

	return strings.TrimSpace(token)
}
