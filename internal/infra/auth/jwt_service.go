// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"gaia/config"
	"gaia/internal/domain/service"
	"gaia/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// ErrTokenExpired is returned by VerifyToken for a well-formed token past its expiry.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid is returned by VerifyToken for malformed or tampered tokens.
var ErrTokenInvalid = errors.New("token invalid")

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	issuer := ""
	if cfg.Auth != nil {
		if cfg.Auth.TokenTTL > 0 {
			ttl = cfg.Auth.TokenTTL
		}
		issuer = cfg.Auth.Issuer
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// IssueToken creates a signed token embedding the user identifier.
func (s *jwtService) IssueToken(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// VerifyToken parses and validates a token string.
func (s *jwtService) VerifyToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(ErrTokenInvalid, err.Error())
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TokenTTL returns the configured lifetime.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
