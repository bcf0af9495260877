package entity

import "math"

// SortOrder is the direction of a list query.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sortable user columns.
const (
	SortByCreatedAt = "createdAt"
	SortByFirstName = "firstName"
	SortByLastName  = "lastName"
	SortByEmail     = "email"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	Search             string // Case-insensitive match on first name, last name or email.
	Gender             *Gender
	EarthCharterSigned *bool
}

// UserListQuery is a paginated, filtered listing request.
type UserListQuery struct {
	Filter    UserFilter
	Page      int // 1-based.
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Offset returns the number of records to skip. It saturates at math.MaxInt instead of wrapping.
func (q UserListQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}

// UserPage is one page of users plus the total match count.
type UserPage struct {
	Users []*User
	Total int64
}

// UserStats aggregates the member base.
type UserStats struct {
	TotalUsers         int64
	EarthCharterSigned int64
	MaleUsers          int64
	FemaleUsers        int64
}

// NearbyUser is a member found by a radius search, with the great-circle distance from the caller.
type NearbyUser struct {
	User       *User
	DistanceKm float64
}
