package validation

// ValidateCoordinates reports whether latitude lies in [-90, 90] and longitude in [-180, 180].
func ValidateCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

// IsValidLocation requires both coordinates to be present and in range.
func IsValidLocation(latitude, longitude *float64) bool {
	if latitude == nil || longitude == nil {
		return false
	}

	return ValidateCoordinates(*latitude, *longitude)
}
