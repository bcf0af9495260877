package model

import (
	"time"

	"gaia/internal/domain/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// UserDocument is the 'users' collection shape. The UUID is stored as its string form in _id.
type UserDocument struct {
	ID            string `bson:"_id"`
	FirstName     string `bson:"firstName"`
	MiddleInitial string `bson:"middleInitial,omitempty"`
	LastName      string `bson:"lastName"`
	Email         string `bson:"email"`
	PasswordHash  string `bson:"password"`
	Gender        string `bson:"gender"`

	BirthYear            int    `bson:"birthYear"`
	BirthMonth           int    `bson:"birthMonth,omitempty"`
	BirthDay             int    `bson:"birthDay,omitempty"`
	GenerationalIdentity string `bson:"generationalIdentity,omitempty"`

	CitizenshipByBirth          string `bson:"citizenshipByBirth,omitempty"`
	BirthplaceProvinceState     string `bson:"birthplaceProvinceState,omitempty"`
	BirthplaceCity              string `bson:"birthplaceCity,omitempty"`
	CitizenshipByNaturalization string `bson:"citizenshipByNaturalization,omitempty"`
	EducationLevel              string `bson:"educationLevel,omitempty"`

	Location           *LocationDocument `bson:"location,omitempty"`
	EarthCharterSigned bool              `bson:"earthCharterSigned"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// LocationDocument is the embedded location sub-document.
type LocationDocument struct {
	Latitude  float64   `bson:"latitude"`
	Longitude float64   `bson:"longitude"`
	Accuracy  *float64  `bson:"accuracy,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

// NewUserDocument converts a domain User to its document.
func NewUserDocument(user *entity.User) *UserDocument {
	if user == nil {
		return nil
	}

	return &UserDocument{
		ID:                          user.ID.String(),
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
		Location:                    NewLocationDocument(user.Location),
		EarthCharterSigned:          user.EarthCharterSigned,
		CreatedAt:                   user.CreatedAt,
		UpdatedAt:                   user.UpdatedAt,
	}
}

// NewLocationDocument returns nil for a nil location.
func NewLocationDocument(loc *entity.Location) *LocationDocument {
	if loc == nil {
		return nil
	}

	return &LocationDocument{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Accuracy:  loc.Accuracy,
		Timestamp: loc.Timestamp,
	}
}

// ToEntity converts the document back to a domain User.
// A malformed _id yields uuid.Nil rather than an error.
func (d *UserDocument) ToEntity() *entity.User {
	if d == nil {
		return nil
	}

	id, _ := uuid.Parse(d.ID)
	user := &entity.User{
		ID:                          id,
		FirstName:                   d.FirstName,
		MiddleInitial:               d.MiddleInitial,
		LastName:                    d.LastName,
		Email:                       d.Email,
		PasswordHash:                d.PasswordHash,
		Gender:                      entity.Gender(d.Gender),
		BirthYear:                   d.BirthYear,
		BirthMonth:                  d.BirthMonth,
		BirthDay:                    d.BirthDay,
		GenerationalIdentity:        d.GenerationalIdentity,
		CitizenshipByBirth:          d.CitizenshipByBirth,
		BirthplaceProvinceState:     d.BirthplaceProvinceState,
		BirthplaceCity:              d.BirthplaceCity,
		CitizenshipByNaturalization: d.CitizenshipByNaturalization,
		EducationLevel:              d.EducationLevel,
		EarthCharterSigned:          d.EarthCharterSigned,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}
	if d.Location != nil {
		user.Location = &entity.Location{
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
			Accuracy:  d.Location.Accuracy,
			Timestamp: d.Location.Timestamp,
		}
	}

	return user
}

// ProfileFields returns the $set document for the non-nil fields of update.
func ProfileFields(update *entity.ProfileUpdate) bson.M {
	fields := bson.M{}
	if update == nil {
		return fields
	}

	putString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	putInt := func(key string, v *int) {
		if v != nil {
			fields[key] = *v
		}
	}

	putString("firstName", update.FirstName)
	putString("middleInitial", update.MiddleInitial)
	putString("lastName", update.LastName)
	if update.Gender != nil {
		fields["gender"] = string(*update.Gender)
	}
	putInt("birthYear", update.BirthYear)
	putInt("birthMonth", update.BirthMonth)
	putInt("birthDay", update.BirthDay)
	putString("generationalIdentity", update.GenerationalIdentity)
	putString("citizenshipByBirth", update.CitizenshipByBirth)
	putString("birthplaceProvinceState", update.BirthplaceProvinceState)
	putString("birthplaceCity", update.BirthplaceCity)
	putString("citizenshipByNaturalization", update.CitizenshipByNaturalization)
	putString("educationLevel", update.EducationLevel)

	return fields
}
