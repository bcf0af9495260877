// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"gaia/internal/delivery/api/response"
	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves registration, login and token endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Register creates an account and answers 201 with a fresh token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, AuthResponse{
		Token: output.Token,
		User:  toUserResponse(output.User),
	}, "User registered successfully")
}

// Login exchanges credentials for a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AuthResponse{
		Token: output.Token,
		User:  toUserResponse(output.User),
	}, "Login successful")
}

// Logout keeps no server state: tokens are stateless, so the client simply drops its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	if userID, ok := deliverycontext.GetUserID(c); ok {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Debug("User logged out", slog.String("userID", userID.String()))
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the profile behind the bearer token.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserEnvelope{User: toUserResponse(user)}, "Profile retrieved successfully")
}

// TokenClaimsResponse describes a verified token.
type TokenClaimsResponse struct {
	ID        string    `json:"id"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// VerifyTokenResponse is returned for a valid token.
type VerifyTokenResponse struct {
	Valid   bool                `json:"valid"`
	Decoded TokenClaimsResponse `json:"decoded"`
}

// VerifyToken checks a token sent in the body.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req VerifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid token input")
	}

	info, err := h.authUC.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, VerifyTokenResponse{
		Valid: true,
		Decoded: TokenClaimsResponse{
			ID:        info.UserID.String(),
			IssuedAt:  info.IssuedAt,
			ExpiresAt: info.ExpiresAt,
		},
	}, "Token is valid")
}

// RefreshToken is reserved and always answers 501.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	_, err := h.authUC.RefreshToken(c.Request().Context(), userID)

	return errors.WithStack(err)
}

// CheckEmailResponse reports whether an address is registered.
type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// CheckEmail reports whether an address already has an account.
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	var req CheckEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	exists, err := h.authUC.CheckEmail(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, CheckEmailResponse{Exists: exists}, "Email check completed")
}
