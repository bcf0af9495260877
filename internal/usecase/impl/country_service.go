package impl

import (
	"context"
	"log/slog"

	deliverycontext "gaia/internal/delivery/context"
	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	"gaia/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type countryService struct {
	countryRepo repository.CountryRepository
	logger      *slog.Logger
}

// CountryServiceParams holds dependencies for CountryService, injected by Fx.
type CountryServiceParams struct {
	fx.In

	CountryRepo repository.CountryRepository
	Logger      *slog.Logger
}

// NewCountryService is the constructor for countryService.
func NewCountryService(params CountryServiceParams) usecase.CountryUsecase {
	return &countryService{
		countryRepo: params.CountryRepo,
		logger:      params.Logger,
	}
}

func (srv *countryService) Countries(ctx context.Context) (*entity.CountryDataset, error) {
	dataset, err := srv.countryRepo.Load(ctx)
	switch {
	case err == nil:
		return dataset, nil
	case errors.Is(err, repository.ErrDatasetNotFound):
		return nil, domainerrors.ErrDatasetNotFound
	case errors.Is(err, repository.ErrDatasetInvalid):
		return nil, domainerrors.ErrDatasetInvalid
	default:
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to load country dataset", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load country dataset")
	}
}
