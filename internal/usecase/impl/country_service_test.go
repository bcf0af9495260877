package impl

import (
	"context"
	"testing"

	"gaia/internal/domain/entity"
	domainerrors "gaia/internal/domain/errors"
	"gaia/internal/domain/repository"
	mockRepo "gaia/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryService_Countries(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("permission denied")
	dataset := &entity.CountryDataset{Raw: []byte(`{"type":"FeatureCollection","features":[]}`), ETag: `"abc"`}

	tests := []struct {
		name    string
		repoOut *entity.CountryDataset
		repoErr error
		wantErr error
	}{
		{name: "loaded", repoOut: dataset},
		{name: "file missing", repoErr: repository.ErrDatasetNotFound, wantErr: domainerrors.ErrDatasetNotFound},
		{name: "not a feature collection", repoErr: errors.Wrap(repository.ErrDatasetInvalid, "parse"), wantErr: domainerrors.ErrDatasetInvalid},
		{name: "read failure", repoErr: ioErr, wantErr: ioErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := mockRepo.NewMockCountryRepository(t)
			srv := NewCountryService(CountryServiceParams{CountryRepo: repo, Logger: newDiscardLogger()})
			ctx := context.Background()

			repo.EXPECT().Load(ctx).Return(tt.repoOut, tt.repoErr)

			got, err := srv.Countries(ctx)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, dataset, got)
		})
	}
}
