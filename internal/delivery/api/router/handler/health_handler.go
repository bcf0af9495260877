package handler

import (
	"context"
	"net/http"
	"time"

	"gaia/config"
	"gaia/internal/delivery/api/response"
	"gaia/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthPingTimeout = 2 * time.Second

// Storage states reported by the health endpoints.
const (
	storageConnected    = "connected"
	storageDisconnected = "disconnected"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Health repository.HealthChecker
	Config *config.Config
}

// HealthHandler serves the root, health and status endpoints.
type HealthHandler struct {
	health      repository.HealthChecker
	serviceName string
	environment string
	version     string
	now         func() time.Time
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		health:      params.Health,
		serviceName: params.Config.Env.ServiceName,
		environment: params.Config.Env.Env,
		version:     params.Config.API.Version,
		now:         time.Now,
	}
}

// Root identifies the service.
func (h *HealthHandler) Root(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"name":        h.serviceName,
		"version":     h.version,
		"environment": h.environment,
		"status":      "running",
	}, "Welcome to the Gaia API")
}

// Health reports liveness plus storage reachability. It answers 200 even when storage is down.
func (h *HealthHandler) Health(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":      "healthy",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"database":    h.storageState(c.Request().Context()),
		"environment": h.environment,
		"version":     h.version,
	}, "Health check successful")
}

// Status is the API-prefixed variant of Health.
func (h *HealthHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":      "running",
		"environment": h.environment,
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"version":     h.version,
		"database":    h.storageState(c.Request().Context()),
	}, "API is running")
}

func (h *HealthHandler) storageState(ctx context.Context) string {
	if h.health == nil {
		return storageDisconnected
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		return storageDisconnected
	}

	return storageConnected
}
