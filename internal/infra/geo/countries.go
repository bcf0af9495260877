package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gaia/config"
	"gaia/internal/domain/entity"
	"gaia/internal/domain/repository"
	"gaia/internal/errors"
	"gaia/internal/util"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/fx"
)

const (
	featureCollectionType = "FeatureCollection"
	defaultGeoJSONPath    = "data/world.geojson"
	unknownGeometry       = "unknown"
)

// CountriesParams defines the parameters required by the countries loader
type CountriesParams struct {
	fx.In

	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// countryLoader reads the world GeoJSON file and keeps the parsed result until the file changes
// or a watcher invalidates it.
type countryLoader struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	cached *entity.CountryDataset
}

// NewCountryRepository returns a file-backed repository.CountryRepository.
func NewCountryRepository(params CountriesParams) repository.CountryRepository {
	path := defaultGeoJSONPath
	watch := false
	if cfg := params.Config.Countries; cfg != nil {
		if cfg.GeoJSONPath != "" {
			path = cfg.GeoJSONPath
		}
		watch = cfg.Watch
	}

	loader := newCountryLoader(path, params.Logger)
	if watch && params.Lifecycle != nil {
		var w *datasetWatcher
		params.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				var err error
				w, err = newDatasetWatcher(path, loader.invalidate, loader.logger)
				if err != nil {
					// The modification-time check still picks up changes.
					loader.logger.Warn("Country dataset watch disabled", slog.String("path", path), slog.Any("error", err))
				}

				return nil
			},
			OnStop: func(_ context.Context) error {
				if w == nil {
					return nil
				}

				return w.stop()
			},
		})
	}

	return loader
}

// NewFileCountryRepository loads the dataset from path.
func NewFileCountryRepository(path string, logger *slog.Logger) repository.CountryRepository {
	return newCountryLoader(path, logger)
}

func newCountryLoader(path string, logger *slog.Logger) *countryLoader {
	if logger == nil {
		logger = slog.Default()
	}

	return &countryLoader{path: path, logger: logger}
}

// invalidate drops the cached dataset so the next Load rereads the file.
func (l *countryLoader) invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *countryLoader) Load(ctx context.Context) (*entity.CountryDataset, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrDatasetNotFound
		}

		return nil, errors.Wrap(err, "failed to stat country dataset")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil && l.cached.ModifiedAt.Equal(info.ModTime()) {
		return l.cached, nil
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read country dataset")
	}

	dataset, err := ParseCountryDataset(raw)
	if err != nil {
		l.logger.WarnContext(ctx, "Country dataset rejected", slog.String("path", l.path), slog.Any("error", err))

		return nil, err
	}
	dataset.ModifiedAt = info.ModTime()

	l.cached = dataset
	l.logger.InfoContext(ctx, "Country dataset loaded",
		slog.String("path", l.path),
		slog.Int("features", dataset.FeatureCount),
		slog.String("size", util.FormatBytes(int64(len(raw)))),
	)

	return dataset, nil
}

// ParseCountryDataset validates raw as a GeoJSON FeatureCollection and summarizes it.
// Anything else yields repository.ErrDatasetInvalid.
func ParseCountryDataset(raw []byte) (*entity.CountryDataset, error) {
	var header struct {
		Type     string          `json:"type"`
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, errors.Wrap(repository.ErrDatasetInvalid, err.Error())
	}
	if header.Type != featureCollectionType || len(header.Features) == 0 {
		return nil, repository.ErrDatasetInvalid
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, errors.Wrap(repository.ErrDatasetInvalid, err.Error())
	}

	geometryTypes := make(map[string]int)
	propertySet := make(map[string]struct{})
	for _, f := range fc.Features {
		if f.Geometry == nil {
			geometryTypes[unknownGeometry]++
		} else {
			geometryTypes[f.Geometry.GeoJSONType()]++
		}
		for key := range f.Properties {
			propertySet[key] = struct{}{}
		}
	}

	properties := make([]string, 0, len(propertySet))
	for key := range propertySet {
		properties = append(properties, key)
	}
	sort.Strings(properties)

	return &entity.CountryDataset{
		Raw:           raw,
		FeatureCount:  len(fc.Features),
		GeometryTypes: geometryTypes,
		PropertyNames: properties,
		ETag:          util.ETag(raw),
	}, nil
}
