package main

import (
	"context"
	"log/slog"

	"gaia/config"
	"gaia/internal/delivery"
	"gaia/internal/delivery/api"
	"gaia/internal/delivery/api/middleware"
	"gaia/internal/delivery/api/router/handler"
	"gaia/internal/infra/auth"
	"gaia/internal/infra/geo"
	logs "gaia/internal/infra/log"
	"gaia/internal/infra/pubsub"
	"gaia/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Shutdowner

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newUserStore,
			geo.NewCountryRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewCountryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewCountryHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))
				_ = params.Shutdown(fx.ExitCode(1))
			}
		}()
	}
}
