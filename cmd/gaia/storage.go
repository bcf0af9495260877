package main

import (
	"log/slog"

	"gaia/config"
	"gaia/internal/domain/repository"
	"gaia/internal/infra/persistence/mongo"
	"gaia/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

type userStoreParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type userStoreResult struct {
	fx.Out

	Users  repository.UserRepository
	Health repository.HealthChecker
}

// newUserStore opens the backend named by storage.driver. Config loading has already rejected unknown drivers.
func newUserStore(params userStoreParams) (userStoreResult, error) {
	if params.Config.Storage.Driver == config.StorageDriverMongo {
		store, err := mongo.New(mongo.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return userStoreResult{}, err
		}

		return userStoreResult{Users: mongo.NewUserRepository(store), Health: store}, nil
	}

	db, err := postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
	if err != nil {
		return userStoreResult{}, err
	}

	return userStoreResult{Users: postgres.NewUserRepository(db), Health: postgres.NewHealthChecker(db)}, nil
}
