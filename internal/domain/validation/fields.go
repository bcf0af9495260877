package validation

import (
	"strings"
	"time"
)

// RequiredFieldsResult lists which required fields were absent.
type RequiredFieldsResult struct {
	IsValid       bool
	MissingFields []string
}

// RequiredFieldsPresent treats a field as missing when absent, nil, or a string that is blank after trimming.
// MissingFields keeps the order of fieldNames.
func RequiredFieldsPresent(data map[string]any, fieldNames []string) RequiredFieldsResult {
	var missing []string

	for _, name := range fieldNames {
		if isBlank(data[name]) {
			missing = append(missing, name)
		}
	}

	return RequiredFieldsResult{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	case *int:
		return v == nil
	case *float64:
		return v == nil
	default:
		return false
	}
}

// SanitizeString trims whitespace and strips angle brackets.
func SanitizeString(value string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(value))
}

// Age limits accepted by ValidateAge.
const (
	MinAge = 13
	MaxAge = 120
)

// ValidateAge reports whether someone born in birthYear is between MinAge and MaxAge in now's year.
func ValidateAge(birthYear int, now time.Time) bool {
	age := now.Year() - birthYear

	return age >= MinAge && age <= MaxAge
}
