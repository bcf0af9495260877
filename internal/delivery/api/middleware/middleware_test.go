package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "gaia/internal/delivery/context"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/service"
	mockSvc "gaia/internal/mocks/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		header  string
		setup   func(m *mockSvc.MockTokenService)
		wantErr error
	}{
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mockSvc.MockTokenService) {
				m.EXPECT().VerifyToken("good").Return(&service.Claims{UserID: userID}, nil)
			},
		},
		{name: "missing header", wantErr: domainerrors.ErrUnauthorized},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz", wantErr: domainerrors.ErrUnauthorized},
		{name: "empty bearer", header: "Bearer   ", wantErr: domainerrors.ErrUnauthorized},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(m *mockSvc.MockTokenService) {
				m.EXPECT().VerifyToken("old").Return(nil, errors.New("token expired"))
			},
			wantErr: domainerrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens := mockSvc.NewMockTokenService(t)
			if tt.setup != nil {
				tt.setup(tokens)
			}
			mw := NewAuthMiddleware(tokens)
			c, _ := newContext(tt.header)

			called := false
			err := mw.Authenticate(func(c echo.Context) error {
				called = true
				got, ok := deliverycontext.GetUserID(c)
				assert.True(t, ok)
				assert.Equal(t, userID, got)

				return nil
			})(c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, called)

				return
			}
			require.NoError(t, err)
			assert.True(t, called)
		})
	}
}

func TestAuthMiddleware_Optional(t *testing.T) {
	t.Parallel()

	t.Run("anonymous continues without identity", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(mockSvc.NewMockTokenService(t))
		c, _ := newContext("")

		err := mw.Optional(func(c echo.Context) error {
			_, ok := deliverycontext.GetUserID(c)
			assert.False(t, ok)

			return nil
		})(c)
		require.NoError(t, err)
	})

	t.Run("invalid token is still rejected", func(t *testing.T) {
		t.Parallel()
		tokens := mockSvc.NewMockTokenService(t)
		tokens.EXPECT().VerifyToken("bad").Return(nil, errors.New("signature"))
		mw := NewAuthMiddleware(tokens)
		c, _ := newContext("Bearer bad")

		err := mw.Optional(func(echo.Context) error {
			t.Fatal("handler must not run")

			return nil
		})(c)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `validate:"required,email"`
	}
	validationErr := validator.New().Struct(payload{})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{name: "app error", err: errors.Wrap(domainerrors.ErrUserAlreadyExists, "register"), wantStatus: http.StatusConflict, wantCode: "USER_ALREADY_EXISTS"},
		{name: "derived app error", err: domainerrors.ErrMissingFields.WithMessage("Required fields: email"), wantStatus: http.StatusBadRequest, wantCode: "MISSING_FIELDS"},
		{name: "validation error", err: validationErr, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "echo http error", err: echo.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "HTTP_ERROR"},
		{name: "unexpected error", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR", wantLogged: true},
		{name: "not implemented", err: domainerrors.ErrNotImplemented, wantStatus: http.StatusNotImplemented, wantCode: "NOT_IMPLEMENTED", wantLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))
			c, rec := newContext("")

			mw.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "db exploded")
			assert.Equal(t, tt.wantLogged, buf.Len() > 0)
		})
	}
}
