package repository

import (
	"context"
	"errors"

	"gaia/internal/domain/entity"
)

var (
	// ErrDatasetNotFound is returned when the countries file does not exist.
	ErrDatasetNotFound = errors.New("country dataset not found")

	// ErrDatasetInvalid is returned when the file is not a GeoJSON FeatureCollection.
	ErrDatasetInvalid = errors.New("country dataset is not a valid feature collection")
)

// CountryRepository loads the world countries dataset.
type CountryRepository interface {
	Load(ctx context.Context) (*entity.CountryDataset, error)
}
