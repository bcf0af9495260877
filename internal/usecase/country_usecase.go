package usecase

import (
	"context"

	"gaia/internal/domain/entity"
)

// CountryUsecase serves the world countries map data.
type CountryUsecase interface {
	Countries(ctx context.Context) (*entity.CountryDataset, error)
}
