package errors

import (
	"net/http"

	"midatopay/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Title() string     // Short error summary
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	title     string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, title, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		title:     title,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.errorCode + ": " + e.details
	}

	return e.errorCode + ": " + e.message
}

// Is matches any BaseError carrying the same business code, so errors built with
// WithDetails still match their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Title returns the short error summary
func (e *BaseError) Title() string {
	return e.title
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		title:     e.title,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Credential errors
	ErrMissingCredential = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"Token requerido",
		"Se requiere un token de autenticación",
		"",
	)

	ErrInvalidLocalCredential = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Token inválido",
		"El token de autenticación no es válido",
		"",
	)

	ErrExpiredLocalCredential = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Token expirado",
		"El token de autenticación ha expirado",
		"",
	)

	ErrInvalidExternalCredential = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_EXTERNAL_TOKEN",
		"Token inválido",
		"El token del proveedor de identidad no es válido",
		"",
	)

	ErrInvalidUser = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_USER",
		"Usuario inválido",
		"El usuario no existe o está inactivo",
		"",
	)

	ErrReconciliationFailed = NewBaseError(
		http.StatusUnauthorized,
		"RECONCILIATION_FAILED",
		"Error de autenticación",
		"No se pudo sincronizar el usuario autenticado",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Credenciales inválidas",
		"Email o contraseña incorrectos",
		"",
	)

	ErrInvalidCurrentPassword = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CURRENT_PASSWORD",
		"Contraseña incorrecta",
		"La contraseña actual no es correcta",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusBadRequest,
		"USER_EXISTS",
		"Usuario ya existe",
		"Ya existe una cuenta con este email",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Usuario no encontrado",
		"El usuario no existe",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Error interno del servidor",
		"No se pudo procesar la contraseña",
		"",
	)

	// Storage errors
	ErrDuplicateEntry = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_ENTRY",
		"Conflicto de datos",
		"Ya existe un registro con estos datos únicos",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No encontrado",
		"El registro solicitado no existe",
		"",
	)

	// Request errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Datos inválidos",
		"Por favor, verifica los datos ingresados",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMIT_EXCEEDED",
		"Demasiadas solicitudes",
		"Has excedido el límite de solicitudes. Intenta de nuevo más tarde.",
		"",
	)

	// Webhook errors
	ErrWebhookSignatureInvalid = NewBaseError(
		http.StatusBadRequest,
		"WEBHOOK_SIGNATURE_INVALID",
		"Firma inválida",
		"No se pudo verificar la firma del webhook",
		"",
	)

	ErrWebhookNotConfigured = NewBaseError(
		http.StatusInternalServerError,
		"WEBHOOK_NOT_CONFIGURED",
		"Configuración faltante",
		"El secreto del webhook no está configurado",
		"",
	)

	ErrWebhookProcessingFailed = NewBaseError(
		http.StatusInternalServerError,
		"WEBHOOK_PROCESSING_FAILED",
		"Error procesando webhook",
		"No se pudo procesar el evento",
		"",
	)

	// Placeholder for disabled subsystems
	ErrFeatureDisabled = NewBaseError(
		http.StatusNotImplemented,
		"FEATURE_DISABLED",
		"Funcionalidad en desarrollo",
		"Esta funcionalidad está temporalmente deshabilitada.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_SERVER_ERROR",
		"Error interno del servidor",
		"Algo salió mal",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Title returns the short error summary
func (e *DatabaseExecuteError) Title() string {
	return "Error interno del servidor"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Error ejecutando la operación en la base de datos"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
