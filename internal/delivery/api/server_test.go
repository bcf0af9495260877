package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gaia/config"
	apimiddleware "gaia/internal/delivery/api/middleware"
	"gaia/internal/delivery/api/router"
	"gaia/internal/delivery/api/router/handler"
	"gaia/internal/domain/entity"
	"gaia/internal/domain/service"
	mockRepo "gaia/internal/mocks/repository"
	mockSvc "gaia/internal/mocks/service"
	mockUC "gaia/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e         *echo.Echo
	tokens    *mockSvc.MockTokenService
	users     *mockUC.MockUserUsecase
	countries *mockUC.MockCountryUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	return newTestServerWithConfig(t, nil)
}

func newTestServerWithConfig(t *testing.T, configure func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.ServiceName = "gaia"
	cfg.HTTP.MaxRequestBodySize = "1K"
	cfg.API.Prefix = "/api"
	cfg.API.Version = "test"
	if configure != nil {
		configure(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &testServer{
		tokens:    mockSvc.NewMockTokenService(t),
		users:     mockUC.NewMockUserUsecase(t),
		countries: mockUC.NewMockCountryUsecase(t),
	}
	auth := mockUC.NewMockAuthUsecase(t)
	health := mockRepo.NewMockHealthChecker(t)

	ts.e = NewEcho(cfg, logger, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: auth, Logger: logger}),
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: ts.users, Logger: logger}),
		CountryHandler: handler.NewCountryHandler(handler.CountryHandlerParams{CountryUC: ts.countries, Config: cfg, Logger: logger}),
		HealthHandler:  handler.NewHealthHandler(handler.HealthHandlerParams{Health: health, Config: cfg}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(ts.tokens),
		Config:         cfg,
	})

	return ts
}

func (ts *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)

	return body.Error.Code
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/refresh-token"},
		{http.MethodGet, "/api/user/me"},
		{http.MethodPut, "/api/user/profile"},
		{http.MethodPatch, "/api/user/location"},
		{http.MethodPost, "/api/user/charter/sign"},
		{http.MethodGet, "/api/user/nearby"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/stats"},
		{http.MethodDelete, "/api/users/" + uuid.NewString()},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := ts.do(route.method, route.path, "", "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		})
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.tokens.EXPECT().VerifyToken("expired").Return(nil, errors.New("token is expired"))

	rec := ts.do(http.MethodGet, "/api/user/me", "", "expired")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, rec))
}

func TestAuthenticatedRouting(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	me := uuid.New()
	ts.tokens.EXPECT().VerifyToken("good").Return(&service.Claims{UserID: me}, nil)
	ts.users.EXPECT().GetUser(mock.Anything, me).Return(&entity.User{ID: me, Email: "me@example.com"}, nil)
	ts.users.EXPECT().Nearby(mock.Anything, me, 10.0).Return(nil, nil)

	rec := ts.do(http.MethodGet, "/api/user/me", "", "good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"me@example.com"`)

	// "nearby" must not be captured by the /:id route.
	rec = ts.do(http.MethodGet, "/api/user/nearby?radiusKm=10", "", "good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[]}`, string(extractData(t, rec)))
}

func TestPublicRoutes(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.countries.EXPECT().Countries(mock.Anything).Return(&entity.CountryDataset{
		Raw:           []byte(`{"type":"FeatureCollection","features":[]}`),
		GeometryTypes: map[string]int{},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/countries", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running"`)

	rec = ts.do(http.MethodGet, "/api/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", errorCode(t, rec))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	body := `{"email":"` + strings.Repeat("a", 2048) + `@example.com"}`

	rec := ts.do(http.MethodPost, "/api/auth/check-email", body, "")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// Not parallel: the metrics middleware registers its collectors on the default registry once.
func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServerWithConfig(t, func(cfg *config.Config) {
		cfg.Metrics = &config.MetricsConfig{Enabled: true, Path: "/metrics"}
	})

	rec := ts.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "_requests_total")
	assert.NotContains(t, rec.Body.String(), `url="/metrics"`)
}

func extractData(t *testing.T, rec *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}
