package model

import (
	"time"

	"gaia/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 generated by the application.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	MiddleInitial string    `gorm:"type:varchar(5)"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Gender        string    `gorm:"type:varchar(10);not null;index"`

	BirthYear            int `gorm:"not null"`
	BirthMonth           int
	BirthDay             int
	GenerationalIdentity string `gorm:"type:varchar(50)"`

	CitizenshipByBirth          string `gorm:"type:varchar(100)"`
	BirthplaceProvinceState     string `gorm:"type:varchar(100)"`
	BirthplaceCity              string `gorm:"type:varchar(100)"`
	CitizenshipByNaturalization string `gorm:"type:varchar(100)"`
	EducationLevel              string `gorm:"type:varchar(100)"`

	// Location columns are all NULL until the member shares a position.
	Latitude          *float64
	Longitude         *float64
	LocationAccuracy  *float64
	LocationTimestamp *time.Time

	EarthCharterSigned bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FromUserEntity converts a domain User to its table row.
func FromUserEntity(user *entity.User) *UserModel {
	if user == nil {
		return nil
	}

	userM := &UserModel{
		ID:                          user.ID,
		FirstName:                   user.FirstName,
		MiddleInitial:               user.MiddleInitial,
		LastName:                    user.LastName,
		Email:                       user.Email,
		PasswordHash:                user.PasswordHash,
		Gender:                      string(user.Gender),
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
	userM.SetLocation(user.Location)

	return userM
}

// SetLocation copies loc into the location columns, clearing them when loc is nil.
func (m *UserModel) SetLocation(loc *entity.Location) {
	if loc == nil {
		m.Latitude, m.Longitude, m.LocationAccuracy, m.LocationTimestamp = nil, nil, nil, nil

		return
	}

	lat, lng, ts := loc.Latitude, loc.Longitude, loc.Timestamp
	m.Latitude = &lat
	m.Longitude = &lng
	m.LocationTimestamp = &ts
	m.LocationAccuracy = nil
	if loc.Accuracy != nil {
		acc := *loc.Accuracy
		m.LocationAccuracy = &acc
	}
}

// ToEntity converts the row back to a domain User.
func (m *UserModel) ToEntity() *entity.User {
	if m == nil {
		return nil
	}

	user := &entity.User{
		ID:                          m.ID,
		FirstName:                   m.FirstName,
		MiddleInitial:               m.MiddleInitial,
		LastName:                    m.LastName,
		Email:                       m.Email,
		PasswordHash:                m.PasswordHash,
		Gender:                      entity.Gender(m.Gender),
		BirthYear:                   m.BirthYear,
		BirthMonth:                  m.BirthMonth,
		BirthDay:                    m.BirthDay,
		GenerationalIdentity:        m.GenerationalIdentity,
		CitizenshipByBirth:          m.CitizenshipByBirth,
		BirthplaceProvinceState:     m.BirthplaceProvinceState,
		BirthplaceCity:              m.BirthplaceCity,
		CitizenshipByNaturalization: m.CitizenshipByNaturalization,
		EducationLevel:              m.EducationLevel,
		EarthCharterSigned:          m.EarthCharterSigned,
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}

	if m.Latitude != nil && m.Longitude != nil {
		loc := &entity.Location{
			Latitude:  *m.Latitude,
			Longitude: *m.Longitude,
		}
		if m.LocationAccuracy != nil {
			acc := *m.LocationAccuracy
			loc.Accuracy = &acc
		}
		if m.LocationTimestamp != nil {
			loc.Timestamp = *m.LocationTimestamp
		}
		user.Location = loc
	}

	return user
}

// ProfileColumns returns the column updates for the non-nil fields of update.
func ProfileColumns(update *entity.ProfileUpdate) map[string]any {
	cols := make(map[string]any)
	if update == nil {
		return cols
	}

	putString := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	putInt := func(col string, v *int) {
		if v != nil {
			cols[col] = *v
		}
	}

	putString("first_name", update.FirstName)
	putString("middle_initial", update.MiddleInitial)
	putString("last_name", update.LastName)
	if update.Gender != nil {
		cols["gender"] = string(*update.Gender)
	}
	putInt("birth_year", update.BirthYear)
	putInt("birth_month", update.BirthMonth)
	putInt("birth_day", update.BirthDay)
	putString("generational_identity", update.GenerationalIdentity)
	putString("citizenship_by_birth", update.CitizenshipByBirth)
	putString("birthplace_province_state", update.BirthplaceProvinceState)
	putString("birthplace_city", update.BirthplaceCity)
	putString("citizenship_by_naturalization", update.CitizenshipByNaturalization)
	putString("education_level", update.EducationLevel)

	return cols
}
