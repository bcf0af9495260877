package errors

import (
	"net/http"

	"gaia/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy carrying a more specific user-facing message.
// errors.Is still matches the original through Unwrap.
func (e *BaseError) WithMessage(message string) AppError {
	return &derivedError{BaseError: NewBaseError(e.httpCode, e.errorCode, message, e.details), parent: e}
}

type derivedError struct {
	*BaseError
	parent *BaseError
}

func (e *derivedError) Unwrap() error {
	return e.parent
}

// Predefined error types
var (
	// Request-shape errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrMissingFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELDS",
		"Required fields: firstName, lastName, email, password",
		"",
	)

	ErrInvalidEmail = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"Please enter a valid email address",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet requirements",
		"",
	)

	ErrInvalidLocation = NewBaseError(
		http.StatusBadRequest,
		"INVALID_LOCATION",
		"Latitude and longitude are required and must be valid coordinates",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"An account with this email address already exists",
		"",
	)

	ErrNoStoredLocation = NewBaseError(
		http.StatusBadRequest,
		"NO_STORED_LOCATION",
		"Share your location before searching nearby members",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Access denied. No token provided",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrTokenRequired = NewBaseError(
		http.StatusBadRequest,
		"TOKEN_REQUIRED",
		"Token is required",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	ErrNotImplemented = NewBaseError(
		http.StatusNotImplemented,
		"NOT_IMPLEMENTED",
		"Refresh token functionality not implemented",
		"",
	)

	// Countries dataset errors
	ErrDatasetNotFound = NewBaseError(
		http.StatusNotFound,
		"DATASET_NOT_FOUND",
		"World GeoJSON file not found",
		"",
	)

	ErrDatasetInvalid = NewBaseError(
		http.StatusBadRequest,
		"DATASET_INVALID",
		"Invalid GeoJSON format: Expected FeatureCollection",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
