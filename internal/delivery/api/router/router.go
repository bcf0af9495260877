// Package router contains routing for the API delivery.
package router

import (
	"gaia/config"
	"gaia/internal/delivery/api/middleware"
	"gaia/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	CountryHandler *handler.CountryHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	countryHandler *handler.CountryHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	prefix         string
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		countryHandler: params.CountryHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		prefix:         params.Config.API.Prefix,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.healthHandler.Root)
	e.GET("/health", r.healthHandler.Health)

	api := e.Group(r.prefix)
	api.GET("/status", r.healthHandler.Status)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Optional)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/verify-token", r.authHandler.VerifyToken)
		authGroup.POST("/refresh-token", r.authHandler.RefreshToken, r.authMiddleware.Authenticate)
		authGroup.POST("/check-email", r.authHandler.CheckEmail)
	}

	userGroup := api.Group("/user", r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetCurrentUser)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.PATCH("/location", r.userHandler.UpdateLocation)
		userGroup.POST("/charter/sign", r.userHandler.SignEarthCharter)
		userGroup.GET("/nearby", r.userHandler.Nearby)
		userGroup.GET("/:id", r.userHandler.GetUser)
	}

	usersGroup := api.Group("/users", r.authMiddleware.Authenticate)
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.GET("/stats", r.userHandler.Stats)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser)
	}

	countriesGroup := api.Group("/countries")
	{
		countriesGroup.GET("", r.countryHandler.Countries)
		countriesGroup.GET("/stats", r.countryHandler.CountryStats)
	}
}
