package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gaia/config"
	"gaia/internal/delivery/api/response"
	"gaia/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCountriesMaxAge = time.Hour

// CountryHandlerParams holds dependencies for CountryHandler, injected by Fx.
type CountryHandlerParams struct {
	fx.In

	CountryUC usecase.CountryUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// CountryHandler serves the world map dataset.
type CountryHandler struct {
	countryUC usecase.CountryUsecase
	maxAge    time.Duration
	logger    *slog.Logger
}

// NewCountryHandler is the constructor for CountryHandler.
func NewCountryHandler(params CountryHandlerParams) *CountryHandler {
	maxAge := defaultCountriesMaxAge
	if params.Config.Countries != nil && params.Config.Countries.CacheMaxAge > 0 {
		maxAge = params.Config.Countries.CacheMaxAge
	}

	return &CountryHandler{
		countryUC: params.CountryUC,
		maxAge:    maxAge,
		logger:    params.Logger,
	}
}

// Countries returns the FeatureCollection. Clients revalidate with If-None-Match.
func (h *CountryHandler) Countries(c echo.Context) error {
	dataset, err := h.countryUC.Countries(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(h.maxAge.Seconds())))
	header.Set(echo.HeaderLastModified, dataset.ModifiedAt.UTC().Format(http.TimeFormat))
	if dataset.ETag != "" {
		header.Set("ETag", dataset.ETag)
		if etagMatches(c.Request().Header.Get("If-None-Match"), dataset.ETag) {
			return c.NoContent(http.StatusNotModified)
		}
	}

	return response.Success(c, http.StatusOK, json.RawMessage(dataset.Raw),
		fmt.Sprintf("World countries data retrieved successfully (%d countries)", dataset.FeatureCount))
}

// CountryStats summarizes the dataset without shipping the geometries.
func (h *CountryHandler) CountryStats(c echo.Context) error {
	dataset, err := h.countryUC.Countries(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, CountryStatsResponse{
		TotalCountries: dataset.FeatureCount,
		GeometryTypes:  dataset.GeometryTypes,
		Properties:     dataset.PropertyNames,
		LastModified:   dataset.ModifiedAt.UTC(),
	}, "World countries statistics retrieved successfully")
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}

	return false
}
