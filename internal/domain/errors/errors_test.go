package errors

import (
	"net/http"
	"testing"

	"gaia/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	err := ErrUserAlreadyExists.WrapMessage("email already exists")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.ErrorCode())
	assert.True(t, errors.Is(err, ErrUserAlreadyExists))
}

func TestBaseError_WithMessage(t *testing.T) {
	err := ErrValidationFailed.WithMessage("Password must contain at least one number")

	assert.Equal(t, "Password must contain at least one number", err.Message())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "Input validation failed", ErrValidationFailed.Message())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create user")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to create user", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, errors.Is(err, cause))
}

func TestPredefinedStatusCodes(t *testing.T) {
	tests := []struct {
		err  *BaseError
		want int
	}{
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrUserAlreadyExists, http.StatusConflict},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrNotImplemented, http.StatusNotImplemented},
		{ErrInvalidLocation, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.ErrorCode(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPCode())
		})
	}
}
