// Package response writes the JSON bodies shared by every API handler.
package response

import (
	"net/http"

	domainerrors "midatopay/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`             // Short summary
	Message string `json:"message"`           // User-facing explanation
	Code    string `json:"code"`              // Machine-readable code, e.g. "VALIDATION_ERROR"
	Details any    `json:"details,omitempty"` // Validation details, or the error chain outside production
}

// DisabledResponse is the body of placeholder routes. Success is omitted by the
// routes that never carried it.
type DisabledResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// DisabledDataResponse is DisabledResponse for routes whose clients read a data field.
type DisabledDataResponse struct {
	DisabledResponse
	Data any `json:"data"`
}

// MessageResponse carries only a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes data with the given status.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes a 200 confirmation message.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error writes an error body.
func Error(c echo.Context, statusCode int, title, message, code string, details any) error {
	return c.JSON(statusCode, ErrorResponse{
		Error:   title,
		Message: message,
		Code:    code,
		Details: details,
	})
}

// AppError writes the body for a domain error.
func AppError(c echo.Context, appErr domainerrors.AppError, details any) error {
	return Error(c, appErr.HTTPCode(), appErr.Title(), appErr.Message(), appErr.ErrorCode(), details)
}

// Disabled writes a FEATURE_DISABLED placeholder body.
func Disabled(c echo.Context, statusCode int, withSuccess bool, message string) error {
	return c.JSON(statusCode, newDisabled(withSuccess, message))
}

// DisabledWithData writes a FEATURE_DISABLED placeholder body with a null data field.
func DisabledWithData(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, DisabledDataResponse{DisabledResponse: newDisabled(true, message)})
}

func newDisabled(withSuccess bool, message string) DisabledResponse {
	body := DisabledResponse{
		Error:   domainerrors.ErrFeatureDisabled.Title(),
		Message: message,
		Code:    domainerrors.ErrFeatureDisabled.ErrorCode(),
	}
	if withSuccess {
		success := false
		body.Success = &success
	}

	return body
}
