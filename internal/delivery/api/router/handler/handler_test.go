package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apimiddleware "gaia/internal/delivery/api/middleware"
	"gaia/internal/delivery/api/validator"
	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError

	return e
}

// serve runs h like the router would, rendering a returned error through the error handler.
func serve(t *testing.T, h echo.HandlerFunc, method, target, body string, prepare func(c echo.Context)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	e := newTestEcho()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prepare != nil {
		prepare(c)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func asUser(id uuid.UUID) func(c echo.Context) {
	return func(c echo.Context) {
		deliverycontext.SetUserID(c, id)
	}
}

func withParam(name, value string, next func(c echo.Context)) func(c echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
		if next != nil {
			next(c)
		}
	}
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))

	return out
}

func testUser() *entity.User {
	acc := 12.5

	return &entity.User{
		ID:                   uuid.MustParse("0190f7a4-0000-7000-8000-0000000000aa"),
		FirstName:            "Ana",
		MiddleInitial:        "M",
		LastName:             "Lopez",
		Email:                "ana@example.com",
		PasswordHash:         "$2a$12$secret-digest",
		Gender:               entity.GenderFemale,
		BirthYear:            1990,
		GenerationalIdentity: "Generation Y",
		Location: &entity.Location{
			Latitude:  40.4168,
			Longitude: -3.7038,
			Accuracy:  &acc,
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
