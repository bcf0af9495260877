package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestValidateCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{name: "origin", lat: 0, lng: 0, want: true},
		{name: "bounds", lat: -90, lng: 180, want: true},
		{name: "lat too high", lat: 90.0001, lng: 0, want: false},
		{name: "lng too low", lat: 0, lng: -180.5, want: false},
		{name: "nan", lat: math.NaN(), lng: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateCoordinates(tt.lat, tt.lng))
		})
	}
}

func TestIsValidLocation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidLocation(ptr(40.4), ptr(-3.7)))
	assert.False(t, IsValidLocation(ptr(40.4), nil))
	assert.False(t, IsValidLocation(nil, ptr(-3.7)))
	assert.False(t, IsValidLocation(ptr(100), ptr(-3.7)))
}
