// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"midatopay/internal/delivery/api/response"
	deliverycontext "midatopay/internal/delivery/context"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/errors"
	"midatopay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC    usecase.AuthUsecase
	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// AuthHandler serves the /api/auth routes.
type AuthHandler struct {
	authUC    usecase.AuthUsecase
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:    params.AuthUC,
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for registering a merchant
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// ChangePasswordRequest represents the request body for rotating the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// RegisteredUser is the user projection returned by register.
type RegisteredUser struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Phone     *string     `json:"phone"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LoggedInUser is the user projection returned by login.
type LoggedInUser struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Phone *string     `json:"phone"`
	Role  entity.Role `json:"role"`
}

// ProfileUser is the full public projection of a user.
type ProfileUser struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Phone           *string     `json:"phone"`
	Role            entity.Role `json:"role"`
	IsActive        bool        `json:"isActive"`
	WalletAddress   *string     `json:"walletAddress"`
	WalletCreatedAt *time.Time  `json:"walletCreatedAt"`
	ExternalID      *string     `json:"externalId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// UpdatedUser is the user projection returned after a profile update.
type UpdatedUser struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Phone           *string     `json:"phone"`
	Role            entity.Role `json:"role"`
	WalletAddress   *string     `json:"walletAddress"`
	WalletCreatedAt *time.Time  `json:"walletCreatedAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
	Token   string         `json:"token"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	User    LoggedInUser `json:"user"`
	Token   string       `json:"token"`
}

// ProfileResponse wraps the profile projection.
type ProfileResponse struct {
	User ProfileUser `json:"user"`
}

// UpdateProfileResponse is the body of a successful profile update.
type UpdateProfileResponse struct {
	Message string      `json:"message"`
	User    UpdatedUser `json:"user"`
}

// Register handles merchant registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req, func() { req.Name = strings.TrimSpace(req.Name) }); err != nil {
		return err
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	u := output.User

	return response.Success(c, http.StatusCreated, RegisterResponse{
		Message: "Usuario registrado exitosamente",
		User: RegisteredUser{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Phone:     u.Phone,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		},
		Token: output.Token,
	})
}

// Login handles email/password sign-in.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, nil); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	u := output.User

	return response.Success(c, http.StatusOK, LoginResponse{
		Message: "Login exitoso",
		User: LoggedInUser{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Phone: u.Phone,
			Role:  u.Role,
		},
		Token: output.Token,
	})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	authUser, ok := deliverycontext.GetAuthUser(c)
	if !ok {
		return domainerrors.ErrMissingCredential
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), authUser.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ProfileResponse{
		User: ProfileUser{
			ID:              user.ID,
			Email:           user.Email,
			Name:            user.Name,
			Phone:           user.Phone,
			Role:            user.Role,
			IsActive:        user.IsActive,
			WalletAddress:   user.WalletAddress,
			WalletCreatedAt: user.WalletCreatedAt,
			ExternalID:      user.ExternalID,
			CreatedAt:       user.CreatedAt,
			UpdatedAt:       user.UpdatedAt,
		},
	})
}

// UpdateProfile applies the optional name and phone changes.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	authUser, ok := deliverycontext.GetAuthUser(c)
	if !ok {
		return domainerrors.ErrMissingCredential
	}

	var req UpdateProfileRequest
	trim := func() {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			req.Name = &name
		}
	}
	if err := bindAndValidate(c, &req, trim); err != nil {
		return err
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), authUser.ID, usecase.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UpdateProfileResponse{
		Message: "Perfil actualizado exitosamente",
		User: UpdatedUser{
			ID:              user.ID,
			Email:           user.Email,
			Name:            user.Name,
			Phone:           user.Phone,
			Role:            user.Role,
			WalletAddress:   user.WalletAddress,
			WalletCreatedAt: user.WalletCreatedAt,
			UpdatedAt:       user.UpdatedAt,
		},
	})
}

// ChangePassword rotates the local password of the authenticated user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	authUser, ok := deliverycontext.GetAuthUser(c)
	if !ok {
		return domainerrors.ErrMissingCredential
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req, nil); err != nil {
		return err
	}

	err := h.authUC.ChangePassword(c.Request().Context(), authUser.ID, usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Contraseña actualizada exitosamente")
}

// CreateWallet is reserved for the wallet issuance flow.
func (h *AuthHandler) CreateWallet(c echo.Context) error {
	return response.Disabled(c, http.StatusNotImplemented, false,
		"La creación de wallets está temporalmente deshabilitada. Esta funcionalidad será reemplazada con la integración de Pagos360 y Manteca.")
}

// bindAndValidate decodes the body into req, runs normalize, then validates.
func bindAndValidate(c echo.Context, req any, normalize func()) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid request body")
	}
	if normalize != nil {
		normalize()
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
