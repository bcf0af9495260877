// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender collected at registration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsValid reports whether g is one of the accepted values.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// User is a registered member of the platform.
type User struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the user.
	FirstName     string
	MiddleInitial string
	LastName      string
	Email         string // Always stored trimmed and lower-cased.
	PasswordHash  string // Never leaves the server.
	Gender        Gender

	BirthYear            int
	BirthMonth           int // 0 when not provided.
	BirthDay             int // 0 when not provided.
	GenerationalIdentity string

	CitizenshipByBirth          string
	BirthplaceProvinceState     string
	BirthplaceCity              string
	CitizenshipByNaturalization string
	EducationLevel              string

	Location           *Location // nil until the member shares a location.
	EarthCharterSigned bool      // true once the member is a Planetarian.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns "First M. Last", skipping the middle initial when empty.
func (u *User) Name() string {
	parts := make([]string, 0, 3)
	if u.FirstName != "" {
		parts = append(parts, u.FirstName)
	}
	if u.MiddleInitial != "" {
		parts = append(parts, strings.TrimSuffix(u.MiddleInitial, ".")+".")
	}
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}

	return strings.Join(parts, " ")
}

// Location is a geographic fix stored on a user profile.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64 // Radius estimate in meters, nil when unknown.
	Timestamp time.Time
}

// ProfileUpdate carries the editable profile fields. A nil pointer leaves the field unchanged.
// Email, password hash and identifier are deliberately absent.
type ProfileUpdate struct {
	FirstName                   *string
	MiddleInitial               *string
	LastName                    *string
	Gender                      *Gender
	BirthYear                   *int
	BirthMonth                  *int
	BirthDay                    *int
	GenerationalIdentity        *string
	CitizenshipByBirth          *string
	BirthplaceProvinceState     *string
	BirthplaceCity              *string
	CitizenshipByNaturalization *string
	EducationLevel              *string
}

// Apply copies every non-nil field onto u.
func (p *ProfileUpdate) Apply(u *User) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&u.FirstName, p.FirstName)
	setString(&u.MiddleInitial, p.MiddleInitial)
	setString(&u.LastName, p.LastName)
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	setInt(&u.BirthYear, p.BirthYear)
	setInt(&u.BirthMonth, p.BirthMonth)
	setInt(&u.BirthDay, p.BirthDay)
	setString(&u.GenerationalIdentity, p.GenerationalIdentity)
	setString(&u.CitizenshipByBirth, p.CitizenshipByBirth)
	setString(&u.BirthplaceProvinceState, p.BirthplaceProvinceState)
	setString(&u.BirthplaceCity, p.BirthplaceCity)
	setString(&u.CitizenshipByNaturalization, p.CitizenshipByNaturalization)
	setString(&u.EducationLevel, p.EducationLevel)
}
