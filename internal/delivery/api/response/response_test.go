package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-42")

	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSuccess(t *testing.T) {
	t.Parallel()
	c, rec := newContext()

	require.NoError(t, Success(c, http.StatusCreated, map[string]string{"token": "t"}, "User registered successfully"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, map[string]any{"token": "t"}, body["data"])
	assert.NotContains(t, body, "error")

	meta := body["meta"].(map[string]any)
	assert.Equal(t, "req-42", meta["request_id"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestError_HidesDetailsForAuthAndServerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status      int
		wantDetails bool
	}{
		{status: http.StatusBadRequest, wantDetails: true},
		{status: http.StatusConflict, wantDetails: true},
		{status: http.StatusUnauthorized},
		{status: http.StatusForbidden},
		{status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, rec := newContext()
		require.NoError(t, Error(c, tt.status, "CODE", "msg", []string{"field"}))

		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "msg", body["message"])
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "CODE", errInfo["code"])
		assert.Equal(t, "msg", errInfo["message"])
		_, hasDetails := errInfo["details"]
		assert.Equal(t, tt.wantDetails, hasDetails, "status %d", tt.status)
	}
}

func TestHandleAppError(t *testing.T) {
	t.Parallel()

	c, rec := newContext()
	err := errors.Wrap(domainerrors.ErrUserAlreadyExists, "create")
	require.NoError(t, HandleAppError(c, err))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decode(t, rec)["error"].(map[string]any)["code"])

	c, _ = newContext()
	plain := errors.New("boom")
	assert.ErrorIs(t, HandleAppError(c, plain), plain)
}
