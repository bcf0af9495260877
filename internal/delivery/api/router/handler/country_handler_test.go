package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gaia/config"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	mockRepo "gaia/internal/mocks/repository"
	mockUC "gaia/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *entity.CountryDataset {
	return &entity.CountryDataset{
		Raw:           []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"Chile"},"geometry":null}]}`),
		FeatureCount:  1,
		GeometryTypes: map[string]int{"unknown": 1},
		PropertyNames: []string{"name"},
		ModifiedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		ETag:          `"0123456789abcdef"`,
	}
}

func TestCountryHandler_Countries(t *testing.T) {
	t.Parallel()

	uc := mockUC.NewMockCountryUsecase(t)
	h := NewCountryHandler(CountryHandlerParams{CountryUC: uc, Config: &config.Config{}, Logger: newDiscardLogger()})
	uc.EXPECT().Countries(mock.Anything).Return(sampleDataset(), nil)

	rec, env := serve(t, h.Countries, http.MethodGet, "/api/countries", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, `"0123456789abcdef"`, rec.Header().Get("ETag"))
	assert.Equal(t, "World countries data retrieved successfully (1 countries)", env.Message)
	assert.JSONEq(t, string(sampleDataset().Raw), string(env.Data))

	rec, _ = serve(t, h.Countries, http.MethodGet, "/api/countries", "", func(c echo.Context) {
		c.Request().Header.Set("If-None-Match", `W/"0123456789abcdef"`)
	})
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestCountryHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing file", err: domainerrors.ErrDatasetNotFound, wantStatus: http.StatusNotFound, wantMsg: "World GeoJSON file not found"},
		{name: "not a collection", err: domainerrors.ErrDatasetInvalid, wantStatus: http.StatusBadRequest, wantMsg: "Invalid GeoJSON format: Expected FeatureCollection"},
		{name: "io failure", err: errors.New("disk"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := mockUC.NewMockCountryUsecase(t)
			cfg := &config.Config{Countries: &config.CountriesConfig{CacheMaxAge: 10 * time.Minute}}
			h := NewCountryHandler(CountryHandlerParams{CountryUC: uc, Config: cfg, Logger: newDiscardLogger()})
			uc.EXPECT().Countries(mock.Anything).Return(nil, tt.err)

			rec, env := serve(t, h.Countries, http.MethodGet, "/api/countries", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get(echo.HeaderCacheControl))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Message)
			}
		})
	}
}

func TestCountryHandler_CountryStats(t *testing.T) {
	t.Parallel()

	uc := mockUC.NewMockCountryUsecase(t)
	h := NewCountryHandler(CountryHandlerParams{CountryUC: uc, Config: &config.Config{}, Logger: newDiscardLogger()})
	uc.EXPECT().Countries(mock.Anything).Return(sampleDataset(), nil)

	rec, env := serve(t, h.CountryStats, http.MethodGet, "/api/countries/stats", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeData[CountryStatsResponse](t, env)
	assert.Equal(t, 1, stats.TotalCountries)
	assert.Equal(t, map[string]int{"unknown": 1}, stats.GeometryTypes)
	assert.Equal(t, []string{"name"}, stats.Properties)
}

func TestEtagMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, etagMatches(`"a", "b"`, `"b"`))
	assert.True(t, etagMatches(`*`, `"b"`))
	assert.False(t, etagMatches(``, `"b"`))
	assert.False(t, etagMatches(`"c"`, `"b"`))
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Env.ServiceName = "gaia"
	cfg.Env.Env = "test"
	cfg.API.Version = "1.2.3"

	health := mockRepo.NewMockHealthChecker(t)
	health.EXPECT().Ping(mock.Anything).Return(nil).Once()
	health.EXPECT().Ping(mock.Anything).Return(context.DeadlineExceeded).Once()

	h := NewHealthHandler(HealthHandlerParams{Health: health, Config: cfg})

	rec, env := serve(t, h.Health, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	up := decodeData[map[string]string](t, env)
	assert.Equal(t, "healthy", up["status"])
	assert.Equal(t, "connected", up["database"])

	rec, env = serve(t, h.Status, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "disconnected", decodeData[map[string]string](t, env)["database"])

	rec, env = serve(t, h.Root, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	root := decodeData[map[string]string](t, env)
	assert.Equal(t, "gaia", root["name"])
	assert.Equal(t, "1.2.3", root["version"])
	assert.Equal(t, "running", root["status"])
}
