package middleware

import (
	"log/slog"
	"net/http"

	"midatopay/config"
	"midatopay/internal/delivery/api/response"
	deliverycontext "midatopay/internal/delivery/context"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger     *slog.Logger
	production bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:     logger,
		production: cfg.IsProduction(),
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := m.resolve(err)

	if appErr.HTTPCode() >= http.StatusInternalServerError {
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
		logger.Error("Request failed",
			slog.String("code", appErr.ErrorCode()),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
			slog.Any("error", err),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(appErr.HTTPCode())
	} else {
		writeErr = response.AppError(c, appErr, m.details(appErr, err))
	}
	if writeErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

// resolve maps any error reaching the boundary onto the public taxonomy.
func (m *ErrorMiddleware) resolve(err error) domainerrors.AppError {
	if appErr, ok := errors.Find[domainerrors.AppError](err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, repository.ErrDuplicateUser):
		return domainerrors.ErrDuplicateEntry
	}

	if httpErr, ok := errors.Find[*echo.HTTPError](err); ok {
		return fromHTTPError(httpErr)
	}

	return domainerrors.ErrInternalError
}

func fromHTTPError(httpErr *echo.HTTPError) domainerrors.AppError {
	switch httpErr.Code {
	case http.StatusTooManyRequests:
		return domainerrors.ErrRateLimited
	case http.StatusNotFound:
		return domainerrors.ErrNotFound
	case http.StatusBadRequest:
		details := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			details = msg
		}

		return validationError(httpErr.Code, details)
	case http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return validationError(httpErr.Code, "")
	}

	if httpErr.Code >= http.StatusInternalServerError {
		return domainerrors.ErrInternalError
	}

	return domainerrors.NewBaseError(httpErr.Code, "HTTP_ERROR", http.StatusText(httpErr.Code),
		http.StatusText(httpErr.Code), "")
}

// validationError keeps the VALIDATION_ERROR code under the transport status. Only
// bind failures carry details; size and media type rejections speak for themselves.
func validationError(status int, details string) domainerrors.AppError {
	return domainerrors.NewBaseError(status, domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Title(), domainerrors.ErrValidationFailed.Message(), details)
}

// details exposes validation details always and the error chain of 5xx responses
// outside production.
func (m *ErrorMiddleware) details(appErr domainerrors.AppError, err error) any {
	if appErr.HTTPCode() >= http.StatusInternalServerError {
		if m.production {
			return nil
		}

		return err.Error()
	}

	if appErr.ErrorCode() == domainerrors.ErrValidationFailed.ErrorCode() && appErr.Details() != "" {
		return appErr.Details()
	}

	return nil
}
