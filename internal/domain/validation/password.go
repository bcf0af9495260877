package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the length requirement reported by the live breakdown.
const MinPasswordLength = 8

var (
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	digitPattern     = regexp.MustCompile(`\d`)
	specialPattern   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	nonAlnumPattern  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// PasswordRequirements is the live per-rule breakdown shown while a password is typed.
type PasswordRequirements struct {
	Length    bool `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
}

// PasswordRequirementBreakdown evaluates each rule independently.
func PasswordRequirementBreakdown(value string) PasswordRequirements {
	return PasswordRequirements{
		Length:    utf8.RuneCountInString(value) >= MinPasswordLength,
		Uppercase: uppercasePattern.MatchString(value),
		Lowercase: lowercasePattern.MatchString(value),
		Number:    digitPattern.MatchString(value),
		Special:   specialPattern.MatchString(value),
	}
}

// All reports whether every rule is satisfied.
func (r PasswordRequirements) All() bool {
	return r.Length && r.Uppercase && r.Lowercase && r.Number && r.Special
}

// PasswordPolicy is a configurable set of password rules.
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
}

// StrictPasswordPolicy requires all five rules. It is the platform default.
func StrictPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        MinPasswordLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

// BasicPasswordPolicy drops the special-character rule.
func BasicPasswordPolicy() PasswordPolicy {
	policy := StrictPasswordPolicy()
	policy.RequireSpecial = false

	return policy
}

// Violations lists a message per unmet rule, in rule order.
func (p PasswordPolicy) Violations(value string) []string {
	var violations []string

	if utf8.RuneCountInString(value) < p.MinLength {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters long", p.MinLength))
	}
	if p.RequireUppercase && !uppercasePattern.MatchString(value) {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !lowercasePattern.MatchString(value) {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if p.RequireNumbers && !digitPattern.MatchString(value) {
		violations = append(violations, "Password must contain at least one number")
	}
	if p.RequireSpecial && !specialPattern.MatchString(value) {
		violations = append(violations, "Password must contain at least one special character")
	}

	return violations
}

// Allows reports whether value satisfies every enabled rule.
func (p PasswordPolicy) Allows(value string) bool {
	return len(p.Violations(value)) == 0
}

// PasswordMeetsPolicy applies StrictPasswordPolicy.
func PasswordMeetsPolicy(value string) bool {
	return StrictPasswordPolicy().Allows(value)
}

// PasswordStrength is a coarse label for UI feedback.
type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

// CalculatePasswordStrength scores length (8, 12), character classes and symbols.
func CalculatePasswordStrength(value string) PasswordStrength {
	score := 0
	length := utf8.RuneCountInString(value)

	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}
	if uppercasePattern.MatchString(value) {
		score++
	}
	if lowercasePattern.MatchString(value) {
		score++
	}
	if digitPattern.MatchString(value) {
		score++
	}
	if nonAlnumPattern.MatchString(value) {
		score++
	}

	switch {
	case score < 3:
		return StrengthWeak
	case score < 5:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
