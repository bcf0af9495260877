// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"gaia/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LocationInput is an optional location sample sent with registration or a location update.
// Latitude and longitude are pointers so a missing coordinate is distinguishable from zero.
type LocationInput struct {
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
	Timestamp *time.Time
}

// RegisterInput carries the flattened registration form.
type RegisterInput struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Email         string
	Password      string
	Gender        string

	BirthYear            int
	BirthMonth           int
	BirthDay             int
	GenerationalIdentity string

	CitizenshipByBirth          string
	BirthplaceProvinceState     string
	BirthplaceCity              string
	CitizenshipByNaturalization string
	EducationLevel              string

	Location *LocationInput
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by registration and login: a fresh token and the stored user.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// TokenInfo describes a verified token.
type TokenInfo struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthUsecase defines registration, login and token operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	VerifyToken(ctx context.Context, token string) (*TokenInfo, error)
	// RefreshToken is reserved; it always fails with a not-implemented error.
	RefreshToken(ctx context.Context, userID uuid.UUID) (*AuthOutput, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}
