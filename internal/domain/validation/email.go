// Package validation holds the pure field checks shared by the API and the registration workflow.
// Nothing here returns an error: callers receive booleans and lists to render.
package validation

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IsValidEmail reports whether value has the shape local@domain.tld after normalization.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(NormalizeEmail(value))
}
