package middleware

import (
	"strings"

	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the bearer token on a request into the caller's user ID.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid, unexpired bearer token with 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthorized
		}

		if err := m.resolve(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

// Optional continues anonymously when no token is sent. A token that is sent must still be valid.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if err := m.resolve(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

func (m *AuthMiddleware) resolve(c echo.Context, token string) error {
	claims, err := m.tokenSvc.VerifyToken(token)
	if err != nil {
		return domainerrors.ErrInvalidToken
	}

	deliverycontext.SetUserID(c, claims.UserID)

	return nil
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

	return token, token != ""
}

