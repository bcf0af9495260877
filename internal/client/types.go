package client

import (
	"time"
)

// Location is a coordinate sample as the API reports it.
type Location struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// User is the public profile returned by the API. It never carries the password digest.
type User struct {
	ID                          string    `json:"id"`
	FirstName                   string    `json:"firstName"`
	MiddleInitial               string    `json:"middleInitial,omitempty"`
	LastName                    string    `json:"lastName"`
	Name                        string    `json:"name"`
	Email                       string    `json:"email"`
	Gender                      string    `json:"gender"`
	BirthYear                   int       `json:"birthYear"`
	BirthMonth                  int       `json:"birthMonth,omitempty"`
	BirthDay                    int       `json:"birthDay,omitempty"`
	GenerationalIdentity        string    `json:"generationalIdentity,omitempty"`
	CitizenshipByBirth          string    `json:"citizenshipByBirth,omitempty"`
	BirthplaceProvinceState     string    `json:"birthplaceProvinceState,omitempty"`
	BirthplaceCity              string    `json:"birthplaceCity,omitempty"`
	CitizenshipByNaturalization string    `json:"citizenshipByNaturalization,omitempty"`
	EducationLevel              string    `json:"educationLevel,omitempty"`
	Location                    *Location `json:"location"`
	EarthCharterSigned          bool      `json:"earthCharterSigned"`
	CreatedAt                   time.Time `json:"createdAt"`
	UpdatedAt                   time.Time `json:"updatedAt"`
}

// RegisterRequest is the flattened registration form plus an optional location.
type RegisterRequest struct {
	FirstName                   string    `json:"firstName"`
	MiddleInitial               string    `json:"middleInitial,omitempty"`
	LastName                    string    `json:"lastName"`
	Gender                      string    `json:"gender"`
	BirthYear                   int       `json:"birthYear"`
	BirthMonth                  int       `json:"birthMonth,omitempty"`
	BirthDay                    int       `json:"birthDay,omitempty"`
	GenerationalIdentity        string    `json:"generationalIdentity,omitempty"`
	CitizenshipByBirth          string    `json:"citizenshipByBirth,omitempty"`
	BirthplaceProvinceState     string    `json:"birthplaceProvinceState,omitempty"`
	BirthplaceCity              string    `json:"birthplaceCity,omitempty"`
	CitizenshipByNaturalization string    `json:"citizenshipByNaturalization,omitempty"`
	EducationLevel              string    `json:"educationLevel,omitempty"`
	Email                       string    `json:"email"`
	Password                    string    `json:"password"`
	Location                    *Location `json:"location"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TokenInfo is the server's view of a token.
type TokenInfo struct {
	Valid     bool
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CountryStats summarizes the world dataset.
type CountryStats struct {
	TotalCountries int            `json:"totalCountries"`
	GeometryTypes  map[string]int `json:"geometryTypes"`
	Properties     []string       `json:"properties"`
	LastModified   time.Time      `json:"lastModified"`
}

type userEnvelope struct {
	User *User `json:"user"`
}
