package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	mockUsecase "midatopay/internal/mocks/usecase"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc", want: "abc"},
		{header: "Basic dXNlcjpwYXNz", want: ""},
		{header: "Bearer", want: ""},
		{header: "abc.def", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.want, bearerToken(c))
		})
	}
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("attaches user and profile on the external path", func(t *testing.T) {
		gate := mockUsecase.NewMockAuthenticator(t)
		m := NewAuthMiddleware(gate)
		user := &entity.User{ID: uuid.New(), IsActive: true}
		profile := &entity.ExternalProfile{ID: "user_1"}

		gate.EXPECT().Authenticate(mock.Anything, "tok").Return(&usecase.AuthOutcome{
			Kind:    usecase.OutcomeAuthenticated,
			Path:    usecase.AuthPathExternal,
			User:    user,
			Profile: profile,
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		c := echo.New().NewContext(req, httptest.NewRecorder())

		var called bool
		err := m.RequireAuth(func(c echo.Context) error {
			called = true
			got, ok := deliverycontext.GetAuthUser(c)
			require.True(t, ok)
			assert.Equal(t, user.ID, got.ID)
			gotProfile, ok := deliverycontext.GetExternalProfile(c)
			require.True(t, ok)
			assert.Equal(t, "user_1", gotProfile.ID)

			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("local path carries no profile", func(t *testing.T) {
		gate := mockUsecase.NewMockAuthenticator(t)
		m := NewAuthMiddleware(gate)

		gate.EXPECT().Authenticate(mock.Anything, "tok").Return(&usecase.AuthOutcome{
			Kind: usecase.OutcomeAuthenticated,
			Path: usecase.AuthPathLocal,
			User: &entity.User{ID: uuid.New(), IsActive: true},
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		c := echo.New().NewContext(req, httptest.NewRecorder())

		err := m.RequireAuth(func(c echo.Context) error {
			_, ok := deliverycontext.GetExternalProfile(c)
			assert.False(t, ok)

			return nil
		})(c)
		require.NoError(t, err)
	})

	t.Run("failure stops the chain", func(t *testing.T) {
		gate := mockUsecase.NewMockAuthenticator(t)
		m := NewAuthMiddleware(gate)

		gate.EXPECT().Authenticate(mock.Anything, "").Return(&usecase.AuthOutcome{
			Kind: usecase.OutcomeReconciliationFailed,
			Path: usecase.AuthPathExternal,
		})

		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		err := m.RequireAuth(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(c)

		assert.ErrorIs(t, err, domainerrors.ErrReconciliationFailed)
	})
}

func TestAuthMiddleware_RequireLocal(t *testing.T) {
	gate := mockUsecase.NewMockAuthenticator(t)
	m := NewAuthMiddleware(gate)

	gate.EXPECT().AuthenticateLocal(mock.Anything, "tok").Return(&usecase.AuthOutcome{
		Kind: usecase.OutcomeInvalidCredential,
		Path: usecase.AuthPathLocal,
		Err:  domainerrors.ErrExpiredLocalCredential,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := m.RequireLocal(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrExpiredLocalCredential)
}
