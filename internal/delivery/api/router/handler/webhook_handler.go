package handler

import (
	"io"
	"log/slog"
	"net/http"

	"midatopay/internal/delivery/api/response"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/service"
	"midatopay/internal/errors"
	"midatopay/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Svix delivery headers.
const (
	HeaderSvixID        = "svix-id"
	HeaderSvixTimestamp = "svix-timestamp"
	HeaderSvixSignature = "svix-signature"
)

// WebhookHandlerParams holds dependencies for WebhookHandler, injected by Fx.
type WebhookHandlerParams struct {
	fx.In

	WebhookUC usecase.WebhookUsecase
	Logger    *slog.Logger
}

// WebhookHandler receives identity provider deliveries.
type WebhookHandler struct {
	webhookUC usecase.WebhookUsecase
	logger    *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler
func NewWebhookHandler(params WebhookHandlerParams) *WebhookHandler {
	return &WebhookHandler{
		webhookUC: params.WebhookUC,
		logger:    params.Logger,
	}
}

// WebhookResponse acknowledges a processed delivery.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Type     string `json:"type"`
}

// Clerk handles a Clerk webhook delivery. The raw body is needed for signature
// verification, so it is never bound.
func (h *WebhookHandler) Clerk(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("unreadable request body")
	}

	headers := service.WebhookHeaders{
		ID:        c.Request().Header.Get(HeaderSvixID),
		Timestamp: c.Request().Header.Get(HeaderSvixTimestamp),
		Signature: c.Request().Header.Get(HeaderSvixSignature),
	}

	eventType, err := h.webhookUC.Process(c.Request().Context(), headers, payload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, WebhookResponse{Received: true, Type: eventType})
}
