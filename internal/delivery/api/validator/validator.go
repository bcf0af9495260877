// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"reflect"
	"strings"

	"gaia/internal/domain/validation"

	"github.com/go-playground/validator/v10"
)

// TagEmail checks an address with the same pattern the registration form uses.
const TagEmail = "gaiaemail"

// RequestValidator validates bound request DTOs.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON (or query) name.
func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// Registration of a fixed tag name with a non-nil func only fails on programmer error.
	_ = v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return validation.IsValidEmail(validation.NormalizeEmail(fl.Field().String()))
	})

	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return field.Name
}
