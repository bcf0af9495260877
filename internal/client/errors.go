package client

import (
	"fmt"
	"net/http"

	"gaia/internal/errors"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func newAPIError(status int, env *envelope) *APIError {
	apiErr := &APIError{StatusCode: status, Message: env.Message}
	if env.Error != nil {
		apiErr.Code = env.Error.Code
		if apiErr.Message == "" {
			apiErr.Message = env.Error.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether the server rejected the credentials (401 or 403).
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthError reports whether err carries a 401 or 403 APIError.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsAuthError()
	}

	return false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
