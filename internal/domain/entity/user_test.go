package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "first and last", user: User{FirstName: "Ana", LastName: "Lopez"}, want: "Ana Lopez"},
		{name: "with initial", user: User{FirstName: "Ana", MiddleInitial: "M", LastName: "Lopez"}, want: "Ana M. Lopez"},
		{name: "initial already dotted", user: User{FirstName: "Ana", MiddleInitial: "M.", LastName: "Lopez"}, want: "Ana M. Lopez"},
		{name: "empty", user: User{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.user.Name())
		})
	}
}

func TestGender_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, GenderMale.IsValid())
	assert.True(t, GenderFemale.IsValid())
	assert.False(t, Gender("").IsValid())
	assert.False(t, Gender("female").IsValid())
}

func TestProfileUpdate_Apply(t *testing.T) {
	t.Parallel()

	first := "Maria"
	year := 1985
	user := &User{FirstName: "Ana", LastName: "Lopez", BirthYear: 1990, Email: "ana@example.com"}

	update := &ProfileUpdate{FirstName: &first, BirthYear: &year}
	update.Apply(user)

	assert.Equal(t, "Maria", user.FirstName)
	assert.Equal(t, "Lopez", user.LastName)
	assert.Equal(t, 1985, user.BirthYear)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestUserListQuery_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, UserListQuery{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, UserListQuery{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, UserListQuery{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, UserListQuery{Page: math.MaxInt/10 + 2, Limit: 100}.Offset())
	assert.Equal(t, 0, UserListQuery{Page: 5, Limit: 0}.Offset())
}
