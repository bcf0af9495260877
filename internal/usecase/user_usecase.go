package usecase

import (
	"context"

	"gaia/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput is a listing request as received from the API; zero values take defaults.
type ListUsersInput struct {
	Page               int
	Limit              int
	SortBy             string
	SortOrder          string
	Search             string
	Gender             string
	EarthCharterSigned *bool
}

// Pagination describes where a page sits in the full result.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalUsers  int64
	HasNextPage bool
	HasPrevPage bool
}

// ListUsersOutput is one page of users.
type ListUsersOutput struct {
	Users      []*entity.User
	Pagination Pagination
}

// UserUsecase defines profile, location, charter and directory operations.
type UserUsecase interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error)
	UpdateLocation(ctx context.Context, userID uuid.UUID, input *LocationInput) (*entity.User, error)
	SignEarthCharter(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	Stats(ctx context.Context) (*entity.UserStats, error)
	// Nearby returns members within radiusKm of the caller's stored location.
	Nearby(ctx context.Context, userID uuid.UUID, radiusKm float64) ([]entity.NearbyUser, error)
}
