// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gaia/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when an insert collides with the unique email index.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the standard operations for user persistence.
// Email lookups and uniqueness are case-insensitive; implementations store emails lower-cased.
type UserRepository interface {
	// Create inserts the user atomically, assigning ID and timestamps.
	// A duplicate email yields ErrUserAlreadyExists, never a generic failure.
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// EmailExists reports whether an account uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateProfile applies update and returns the stored user.
	UpdateProfile(ctx context.Context, id uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error)

	// UpdateLocation replaces the stored location and returns the stored user.
	UpdateLocation(ctx context.Context, id uuid.UUID, location *entity.Location) (*entity.User, error)

	// SetEarthCharterSigned sets the Planetarian flag; signing twice is not an error.
	SetEarthCharterSigned(ctx context.Context, id uuid.UUID) (*entity.User, error)

	List(ctx context.Context, query entity.UserListQuery) (*entity.UserPage, error)

	// FindWithLocation returns every user that has a stored location, excluding excludeID.
	FindWithLocation(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error)

	Delete(ctx context.Context, id uuid.UUID) error

	Stats(ctx context.Context) (*entity.UserStats, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
