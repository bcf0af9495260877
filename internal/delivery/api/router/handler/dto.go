package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gaia/internal/domain/entity"
	"gaia/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// UserResponse is the public shape of a member. The password digest is never part of it.
type UserResponse struct {
	ID                          uuid.UUID         `json:"id"`
	FirstName                   string            `json:"firstName"`
	MiddleInitial               string            `json:"middleInitial,omitempty"`
	LastName                    string            `json:"lastName"`
	Name                        string            `json:"name"`
	Email                       string            `json:"email"`
	Gender                      entity.Gender     `json:"gender"`
	BirthYear                   int               `json:"birthYear"`
	BirthMonth                  int               `json:"birthMonth,omitempty"`
	BirthDay                    int               `json:"birthDay,omitempty"`
	GenerationalIdentity        string            `json:"generationalIdentity,omitempty"`
	CitizenshipByBirth          string            `json:"citizenshipByBirth,omitempty"`
	BirthplaceProvinceState     string            `json:"birthplaceProvinceState,omitempty"`
	BirthplaceCity              string            `json:"birthplaceCity,omitempty"`
	CitizenshipByNaturalization string            `json:"citizenshipByNaturalization,omitempty"`
	EducationLevel              string            `json:"educationLevel,omitempty"`
	Location                    *LocationResponse `json:"location"`
	EarthCharterSigned          bool              `json:"earthCharterSigned"`
	CreatedAt                   time.Time         `json:"createdAt"`
	UpdatedAt                   time.Time         `json:"updatedAt"`
}

// LocationResponse is a stored location sample.
type LocationResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:                          user.ID,
		FirstName:                   user.FirstName,
		MiddleInitial:               user.MiddleInitial,
		LastName:                    user.LastName,
		Name:                        user.Name(),
		Email:                       user.Email,
		Gender:                      user.Gender,
		BirthYear:                   user.BirthYear,
		BirthMonth:                  user.BirthMonth,
		BirthDay:                    user.BirthDay,
		GenerationalIdentity:        user.GenerationalIdentity,
		CitizenshipByBirth:          user.CitizenshipByBirth,
		BirthplaceProvinceState:     user.BirthplaceProvinceState,
		BirthplaceCity:              user.BirthplaceCity,
		CitizenshipByNaturalization: user.CitizenshipByNaturalization,
		EducationLevel:              user.EducationLevel,
		EarthCharterSigned:          user.EarthCharterSigned,
		CreatedAt:                   user.CreatedAt,
		UpdatedAt:                   user.UpdatedAt,
	}
	if loc := user.Location; loc != nil {
		resp.Location = &LocationResponse{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Accuracy:  loc.Accuracy,
			Timestamp: loc.Timestamp,
		}
	}

	return resp
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}

// UserEnvelope wraps a single member as {"user": ...}.
type UserEnvelope struct {
	User *UserResponse `json:"user"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// FlexInt accepts a JSON number, a numeric string, or an empty string (zero).
// Browser forms post select values such as birthYear as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0

		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*f = 0

			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Errorf("expected an integer, got %s", data)
	}
	*f = FlexInt(n)

	return nil
}

// LocationRequest is a location sample; both coordinates are checked by the usecase.
type LocationRequest struct {
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Accuracy  *float64   `json:"accuracy"`
	Timestamp *time.Time `json:"timestamp"`
}

func (r *LocationRequest) toInput() *usecase.LocationInput {
	if r == nil {
		return nil
	}

	return &usecase.LocationInput{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Accuracy:  r.Accuracy,
		Timestamp: r.Timestamp,
	}
}

// RegisterRequest is the flattened registration form plus an optional location.
type RegisterRequest struct {
	FirstName                   string           `json:"firstName" validate:"max=100"`
	MiddleInitial               string           `json:"middleInitial" validate:"max=2"`
	LastName                    string           `json:"lastName" validate:"max=100"`
	Gender                      string           `json:"gender"`
	BirthYear                   FlexInt          `json:"birthYear"`
	BirthMonth                  FlexInt          `json:"birthMonth" validate:"min=0,max=12"`
	BirthDay                    FlexInt          `json:"birthDay" validate:"min=0,max=31"`
	GenerationalIdentity        string           `json:"generationalIdentity" validate:"max=50"`
	CitizenshipByBirth          string           `json:"citizenshipByBirth" validate:"max=100"`
	BirthplaceProvinceState     string           `json:"birthplaceProvinceState" validate:"max=100"`
	BirthplaceCity              string           `json:"birthplaceCity" validate:"max=100"`
	CitizenshipByNaturalization string           `json:"citizenshipByNaturalization" validate:"max=100"`
	EducationLevel              string           `json:"educationLevel" validate:"max=100"`
	Email                       string           `json:"email" validate:"max=254"`
	Password                    string           `json:"password"`
	Location                    *LocationRequest `json:"location"`
}

func (r *RegisterRequest) toInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName:                   r.FirstName,
		MiddleInitial:               r.MiddleInitial,
		LastName:                    r.LastName,
		Gender:                      r.Gender,
		BirthYear:                   int(r.BirthYear),
		BirthMonth:                  int(r.BirthMonth),
		BirthDay:                    int(r.BirthDay),
		GenerationalIdentity:        r.GenerationalIdentity,
		CitizenshipByBirth:          r.CitizenshipByBirth,
		BirthplaceProvinceState:     r.BirthplaceProvinceState,
		BirthplaceCity:              r.BirthplaceCity,
		CitizenshipByNaturalization: r.CitizenshipByNaturalization,
		EducationLevel:              r.EducationLevel,
		Email:                       r.Email,
		Password:                    r.Password,
		Location:                    r.Location.toInput(),
	}
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password"`
}

// VerifyTokenRequest carries a token to check.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// CheckEmailRequest asks whether an address is taken.
type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,gaiaemail"`
}

// UpdateProfileRequest lists the editable fields; omitted fields stay unchanged.
// Email, password and id are not accepted here.
type UpdateProfileRequest struct {
	FirstName                   *string  `json:"firstName" validate:"omitempty,max=100"`
	MiddleInitial               *string  `json:"middleInitial" validate:"omitempty,max=2"`
	LastName                    *string  `json:"lastName" validate:"omitempty,max=100"`
	Gender                      *string  `json:"gender"`
	BirthYear                   *FlexInt `json:"birthYear"`
	BirthMonth                  *FlexInt `json:"birthMonth" validate:"omitempty,min=0,max=12"`
	BirthDay                    *FlexInt `json:"birthDay" validate:"omitempty,min=0,max=31"`
	GenerationalIdentity        *string  `json:"generationalIdentity" validate:"omitempty,max=50"`
	CitizenshipByBirth          *string  `json:"citizenshipByBirth" validate:"omitempty,max=100"`
	BirthplaceProvinceState     *string  `json:"birthplaceProvinceState" validate:"omitempty,max=100"`
	BirthplaceCity              *string  `json:"birthplaceCity" validate:"omitempty,max=100"`
	CitizenshipByNaturalization *string  `json:"citizenshipByNaturalization" validate:"omitempty,max=100"`
	EducationLevel              *string  `json:"educationLevel" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) toUpdate() *entity.ProfileUpdate {
	update := &entity.ProfileUpdate{
		FirstName:                   r.FirstName,
		MiddleInitial:               r.MiddleInitial,
		LastName:                    r.LastName,
		BirthYear:                   flexIntPtr(r.BirthYear),
		BirthMonth:                  flexIntPtr(r.BirthMonth),
		BirthDay:                    flexIntPtr(r.BirthDay),
		GenerationalIdentity:        r.GenerationalIdentity,
		CitizenshipByBirth:          r.CitizenshipByBirth,
		BirthplaceProvinceState:     r.BirthplaceProvinceState,
		BirthplaceCity:              r.BirthplaceCity,
		CitizenshipByNaturalization: r.CitizenshipByNaturalization,
		EducationLevel:              r.EducationLevel,
	}
	if r.Gender != nil {
		gender := entity.Gender(strings.TrimSpace(*r.Gender))
		update.Gender = &gender
	}

	return update
}

func flexIntPtr(v *FlexInt) *int {
	if v == nil {
		return nil
	}
	n := int(*v)

	return &n
}

// PaginationResponse mirrors usecase.Pagination with JSON names.
type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// UserListResponse is one page of the member directory.
type UserListResponse struct {
	Users      []*UserResponse    `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

// StatsResponse aggregates the member base.
type StatsResponse struct {
	TotalUsers         int64 `json:"totalUsers"`
	EarthCharterSigned int64 `json:"earthCharterSigned"`
	MaleUsers          int64 `json:"maleUsers"`
	FemaleUsers        int64 `json:"femaleUsers"`
}

// NearbyUserResponse is a member found by radius search.
type NearbyUserResponse struct {
	User       *UserResponse `json:"user"`
	DistanceKm float64       `json:"distanceKm"`
}

// CountryStatsResponse summarizes the world dataset.
type CountryStatsResponse struct {
	TotalCountries int            `json:"totalCountries"`
	GeometryTypes  map[string]int `json:"geometryTypes"`
	Properties     []string       `json:"properties"`
	LastModified   time.Time      `json:"lastModified"`
}

var _ json.Unmarshaler = (*FlexInt)(nil)
