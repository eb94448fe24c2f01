package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"midatopay/config"
	apimiddleware "midatopay/internal/delivery/api/middleware"
	"midatopay/internal/delivery/api/router"
	"midatopay/internal/delivery/api/router/handler"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/service"
	"midatopay/internal/infra/metrics"
	mockUsecase "midatopay/internal/mocks/usecase"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixtures struct {
	e         *echo.Echo
	authUC    *mockUsecase.MockAuthUsecase
	profileUC *mockUsecase.MockProfileUsecase
	gate      *mockUsecase.MockAuthenticator
	webhookUC *mockUsecase.MockWebhookUsecase
}

func newTestServerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "development"
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func createTestServer(t *testing.T, cfg *config.Config) serverFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := metrics.NewRegistry()
	collector := metrics.NewCollector(reg)

	f := serverFixtures{
		authUC:    mockUsecase.NewMockAuthUsecase(t),
		profileUC: mockUsecase.NewMockProfileUsecase(t),
		gate:      mockUsecase.NewMockAuthenticator(t),
		webhookUC: mockUsecase.NewMockWebhookUsecase(t),
	}

	f.e = NewEcho(ServerParams{
		Cfg:     cfg,
		Logger:  logger,
		Errors:  apimiddleware.NewErrorMiddleware(logger, cfg),
		Metrics: apimiddleware.NewMetricsMiddleware(collector),
		RouterParams: router.RouterParams{
			AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
				AuthUC:    f.authUC,
				ProfileUC: f.profileUC,
				Logger:    logger,
			}),
			WebhookHandler: handler.NewWebhookHandler(handler.WebhookHandlerParams{
				WebhookUC: f.webhookUC,
				Logger:    logger,
			}),
			DisabledHandler: handler.NewDisabledHandler(),
			AuthMiddleware:  apimiddleware.NewAuthMiddleware(f.gate),
			RateLimit:       apimiddleware.NewRateLimitMiddleware(cfg),
			Gatherer:        reg,
		},
	})

	return f
}

func (f serverFixtures) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func testUser() *entity.User {
	phone := "+5491100000000"
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	return &entity.User{
		ID:        uuid.New(),
		Email:     "ana@example.com",
		Name:      "Ana Gómez",
		Phone:     &phone,
		Role:      entity.RoleMerchant,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

func TestServer_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())
		user := testUser()

		f.authUC.EXPECT().
			Register(mock.Anything, usecase.RegisterInput{
				Email:    "ana@example.com",
				Password: "secret1",
				Name:     "Ana Gómez",
				Phone:    user.Phone,
			}).
			Return(&usecase.AuthOutput{User: user, Token: "local-token"}, nil)

		rec := f.do(http.MethodPost, "/api/auth/register",
			`{"email":"ana@example.com","password":"secret1","name":"  Ana Gómez ","phone":"+5491100000000"}`, nil)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "Usuario registrado exitosamente", body["message"])
		assert.Equal(t, "local-token", body["token"])

		u := body["user"].(map[string]any)
		assert.Equal(t, user.ID.String(), u["id"])
		assert.Equal(t, "MERCHANT", u["role"])
		assert.Contains(t, u, "createdAt")
		assert.NotContains(t, u, "password")
		assert.NotContains(t, u, "updatedAt")
	})

	t.Run("invalid input", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		rec := f.do(http.MethodPost, "/api/auth/register", `{"email":"nope","password":"123","name":"A"}`, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Equal(t, "Datos inválidos", body["error"])
		assert.Contains(t, body["details"], "password: min=6")
	})

	t.Run("malformed json", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		rec := f.do(http.MethodPost, "/api/auth/register", `{"email":`, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

		rec := f.do(http.MethodPost, "/api/auth/register",
			`{"email":"ana@example.com","password":"secret1","name":"Ana"}`, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "USER_EXISTS", body["code"])
		assert.Equal(t, "Ya existe una cuenta con este email", body["message"])
	})
}

func TestServer_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())
		user := testUser()

		f.authUC.EXPECT().
			Login(mock.Anything, usecase.LoginInput{Email: "ana@example.com", Password: "secret1"}).
			Return(&usecase.AuthOutput{User: user, Token: "local-token"}, nil)

		rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"secret1"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Login exitoso", body["message"])
		u := body["user"].(map[string]any)
		assert.Equal(t, user.Email, u["email"])
		assert.NotContains(t, u, "createdAt")
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

		rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"wrong"}`, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
		assert.Equal(t, "Credenciales inválidas", body["error"])
		assert.NotContains(t, body, "details")
	})
}

func TestServer_Profile(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.gate.EXPECT().Authenticate(mock.Anything, "").Return(&usecase.AuthOutcome{
			Kind: usecase.OutcomeMissingCredential,
			Path: usecase.AuthPathNone,
			Err:  domainerrors.ErrMissingCredential,
		})

		rec := f.do(http.MethodGet, "/api/auth/profile", "", nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", decode(t, rec)["code"])
	})

	t.Run("external identity", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())
		user := testUser()
		user.LinkExternal("user_2abc")

		f.gate.EXPECT().Authenticate(mock.Anything, "provider-token").Return(&usecase.AuthOutcome{
			Kind:    usecase.OutcomeAuthenticated,
			Path:    usecase.AuthPathExternal,
			User:    user,
			Profile: &entity.ExternalProfile{ID: "user_2abc"},
		})
		f.profileUC.EXPECT().GetProfile(mock.Anything, user.ID).Return(user, nil)

		rec := f.do(http.MethodGet, "/api/auth/profile", "", bearer("provider-token"))

		require.Equal(t, http.StatusOK, rec.Code)
		u := decode(t, rec)["user"].(map[string]any)
		assert.Equal(t, "user_2abc", u["externalId"])
		assert.Equal(t, true, u["isActive"])
		assert.Contains(t, u, "walletAddress")
		assert.Nil(t, u["walletAddress"])
	})

	t.Run("update", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())
		user := testUser()
		updated := *user
		updated.Name = "Ana María"

		f.gate.EXPECT().Authenticate(mock.Anything, "tok").Return(&usecase.AuthOutcome{
			Kind: usecase.OutcomeAuthenticated,
			Path: usecase.AuthPathLocal,
			User: user,
		})
		f.profileUC.EXPECT().
			UpdateProfile(mock.Anything, user.ID, mock.MatchedBy(func(in usecase.UpdateProfileInput) bool {
				return in.Name != nil && *in.Name == "Ana María" && in.Phone == nil
			})).
			Return(&updated, nil)

		rec := f.do(http.MethodPut, "/api/auth/profile", `{"name":" Ana María "}`, bearer("tok"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Perfil actualizado exitosamente", body["message"])
		assert.Equal(t, "Ana María", body["user"].(map[string]any)["name"])
	})

	t.Run("inactive user", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.gate.EXPECT().Authenticate(mock.Anything, "tok").Return(&usecase.AuthOutcome{
			Kind: usecase.OutcomeInvalidUser,
			Path: usecase.AuthPathLocal,
			Err:  domainerrors.ErrInvalidUser,
		})

		rec := f.do(http.MethodGet, "/api/auth/profile", "", bearer("tok"))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_USER", decode(t, rec)["code"])
	})
}

func TestServer_ChangePasswordUsesLocalGate(t *testing.T) {
	f := createTestServer(t, newTestServerConfig())
	user := testUser()

	f.gate.EXPECT().AuthenticateLocal(mock.Anything, "local-token").Return(&usecase.AuthOutcome{
		Kind: usecase.OutcomeAuthenticated,
		Path: usecase.AuthPathLocal,
		User: user,
	})
	f.authUC.EXPECT().
		ChangePassword(mock.Anything, user.ID, usecase.ChangePasswordInput{CurrentPassword: "old-pass", NewPassword: "new-pass"}).
		Return(nil)

	rec := f.do(http.MethodPut, "/api/auth/change-password",
		`{"currentPassword":"old-pass","newPassword":"new-pass"}`, bearer("local-token"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contraseña actualizada exitosamente", decode(t, rec)["message"])
}

func TestServer_CreateWalletIsDisabled(t *testing.T) {
	f := createTestServer(t, newTestServerConfig())

	f.gate.EXPECT().Authenticate(mock.Anything, "tok").Return(&usecase.AuthOutcome{
		Kind: usecase.OutcomeAuthenticated,
		Path: usecase.AuthPathLocal,
		User: testUser(),
	})

	rec := f.do(http.MethodPost, "/api/auth/create-wallet", "", bearer("tok"))

	require.Equal(t, http.StatusNotImplemented, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "FEATURE_DISABLED", body["code"])
	assert.Equal(t, "Funcionalidad en desarrollo", body["error"])
	assert.NotContains(t, body, "success")
}

func TestServer_DisabledRoutes(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantSuccess bool
		wantData    bool
	}{
		{name: "generate qr", method: http.MethodPost, path: "/api/midatopay/generate-qr", wantStatus: http.StatusOK, wantSuccess: true},
		{name: "oracle quote", method: http.MethodGet, path: "/api/oracle/quote/1500", wantStatus: http.StatusOK, wantSuccess: true, wantData: true},
		{name: "oracle rate", method: http.MethodGet, path: "/api/oracle/rate", wantStatus: http.StatusNotImplemented, wantSuccess: true},
		{name: "payment by qr", method: http.MethodGet, path: "/api/payments/qr/abc", wantStatus: http.StatusNotImplemented},
		{name: "transaction", method: http.MethodGet, path: "/api/transactions/tx-1", wantStatus: http.StatusNotImplemented, wantSuccess: true},
		{name: "transaction status", method: http.MethodGet, path: "/api/transactions/tx-1/status", wantStatus: http.StatusNotImplemented},
		{name: "wallet clear", method: http.MethodDelete, path: "/api/wallet/clear", wantStatus: http.StatusNotImplemented, wantSuccess: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestServer(t, newTestServerConfig())

			rec := f.do(tt.method, tt.path, "", nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, "FEATURE_DISABLED", body["code"])
			assert.NotEmpty(t, body["message"])
			if tt.wantSuccess {
				assert.Equal(t, false, body["success"])
			} else {
				assert.NotContains(t, body, "success")
			}
			if tt.wantData {
				assert.Contains(t, body, "data")
				assert.Nil(t, body["data"])
			} else {
				assert.NotContains(t, body, "data")
			}
		})
	}
}

func TestServer_LocalGatedDisabledRoutes(t *testing.T) {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/midatopay/payment-history"},
		{http.MethodGet, "/api/midatopay/stats"},
		{http.MethodPost, "/api/payments/create"},
		{http.MethodGet, "/api/payments/my-payments"},
		{http.MethodGet, "/api/payments/p-1"},
		{http.MethodPut, "/api/payments/p-1/cancel"},
		{http.MethodGet, "/api/transactions/my-transactions"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			f := createTestServer(t, newTestServerConfig())

			f.gate.EXPECT().AuthenticateLocal(mock.Anything, "provider-token").Return(&usecase.AuthOutcome{
				Kind: usecase.OutcomeInvalidCredential,
				Path: usecase.AuthPathLocal,
				Err:  domainerrors.ErrInvalidLocalCredential,
			}).Once()

			rec := f.do(p.method, p.path, "", bearer("provider-token"))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "INVALID_TOKEN", decode(t, rec)["code"])

			f.gate.EXPECT().AuthenticateLocal(mock.Anything, "local-token").Return(&usecase.AuthOutcome{
				Kind: usecase.OutcomeAuthenticated,
				Path: usecase.AuthPathLocal,
				User: testUser(),
			}).Once()

			rec = f.do(p.method, p.path, "", bearer("local-token"))
			require.Equal(t, http.StatusNotImplemented, rec.Code)
			assert.Equal(t, "FEATURE_DISABLED", decode(t, rec)["code"])
		})
	}
}

func TestServer_ClerkWebhook(t *testing.T) {
	payload := `{"type":"user.created","data":{"id":"user_1"}}`
	headers := map[string]string{
		"svix-id":        "msg_1",
		"svix-timestamp": "1700000000",
		"svix-signature": "v1,abc",
	}

	t.Run("processed", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.webhookUC.EXPECT().
			Process(mock.Anything, service.WebhookHeaders{ID: "msg_1", Timestamp: "1700000000", Signature: "v1,abc"}, []byte(payload)).
			Return("user.created", nil)

		rec := f.do(http.MethodPost, "/api/webhooks/clerk", payload, headers)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["received"])
		assert.Equal(t, "user.created", body["type"])
	})

	t.Run("bad signature", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.webhookUC.EXPECT().Process(mock.Anything, mock.Anything, mock.Anything).
			Return("", domainerrors.ErrWebhookSignatureInvalid)

		rec := f.do(http.MethodPost, "/api/webhooks/clerk", payload, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "WEBHOOK_SIGNATURE_INVALID", decode(t, rec)["code"])
	})

	t.Run("processing failure", func(t *testing.T) {
		f := createTestServer(t, newTestServerConfig())

		f.webhookUC.EXPECT().Process(mock.Anything, mock.Anything, mock.Anything).
			Return("", domainerrors.ErrWebhookProcessingFailed.WrapMessage("user.updated: connection reset"))

		rec := f.do(http.MethodPost, "/api/webhooks/clerk", payload, headers)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "WEBHOOK_PROCESSING_FAILED", body["code"])
		assert.Contains(t, body["details"], "connection reset")
	})
}

func TestServer_InternalErrorDetailsHiddenInProduction(t *testing.T) {
	cfg := newTestServerConfig()
	cfg.Env.Env = "production"
	f := createTestServer(t, cfg)

	f.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, errors.New("pool exhausted"))

	rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"x"}`, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	assert.Equal(t, "Algo salió mal", body["message"])
	assert.NotContains(t, body, "details")
	assert.NotContains(t, rec.Body.String(), "pool exhausted")
}

func TestServer_UnknownRoute(t *testing.T) {
	f := createTestServer(t, newTestServerConfig())

	rec := f.do(http.MethodGet, "/api/nope", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["code"])
}

func TestServer_RateLimitedLogin(t *testing.T) {
	cfg := newTestServerConfig()
	cfg.HTTP.RateLimit = &config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1, ExpiresIn: time.Minute}
	f := createTestServer(t, cfg)

	f.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials).Once()

	body := `{"email":"ana@example.com","password":"wrong"}`
	first := f.do(http.MethodPost, "/api/auth/login", body, nil)
	require.Equal(t, http.StatusUnauthorized, first.Code)

	second := f.do(http.MethodPost, "/api/auth/login", body, nil)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode(t, second)["code"])
}

func TestServer_HealthAndMetrics(t *testing.T) {
	f := createTestServer(t, newTestServerConfig())

	rec := f.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `midatopay_http_requests_total{method="GET",route="/health",status_code="200"} 1`)
}
