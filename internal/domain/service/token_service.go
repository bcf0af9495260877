package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for session tokens.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens.
// There is no refresh rotation: a new token is issued on every login or registration.
type TokenService interface {
	// IssueToken signs a token for userID that expires after the configured TTL.
	IssueToken(userID uuid.UUID) (string, error)

	// VerifyToken returns the claims of a valid token, or an error for malformed, tampered or expired tokens.
	VerifyToken(tokenString string) (*Claims, error)

	// TokenTTL returns the configured token lifetime.
	TokenTTL() time.Duration
}
