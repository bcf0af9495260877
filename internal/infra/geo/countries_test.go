package geo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gaia/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Atlantis", "iso": "AT"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "properties": {"name": "Lemuria", "continent": "Indian"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[2,2],[3,2],[3,3],[2,2]]]]}},
    {"type": "Feature", "properties": {"name": "Mu"},
     "geometry": {"type": "Polygon", "coordinates": [[[5,5],[6,5],[6,6],[5,5]]]}}
  ]
}`

func TestParseCountryDataset(t *testing.T) {
	t.Parallel()

	ds, err := ParseCountryDataset([]byte(sampleCollection))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.FeatureCount)
	assert.Equal(t, map[string]int{"Polygon": 2, "MultiPolygon": 1}, ds.GeometryTypes)
	assert.Equal(t, []string{"continent", "iso", "name"}, ds.PropertyNames)
	assert.NotEmpty(t, ds.ETag)
	assert.Equal(t, sampleCollection, string(ds.Raw))
}

func TestParseCountryDataset_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "<html>"},
		{name: "single feature", raw: `{"type":"Feature","properties":{},"geometry":null}`},
		{name: "missing features", raw: `{"type":"FeatureCollection"}`},
		{name: "array", raw: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseCountryDataset([]byte(tt.raw))
			assert.ErrorIs(t, err, repository.ErrDatasetInvalid)
		})
	}
}

func TestCountryLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "world.geojson")
	repo := NewFileCountryRepository(path, nil)
	ctx := context.Background()

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrDatasetNotFound)

	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o600))
	first, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.FeatureCount)

	second, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged file is served from cache")

	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Feature"}`), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrDatasetInvalid)
}

func TestCountryLoader_WatchInvalidatesCache(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "world.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o600))

	loader := newCountryLoader(path, nil)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	changed := make(chan struct{}, 8)
	w, err := newDatasetWatcher(path, func() {
		loader.invalidate()
		changed <- struct{}{}
	}, loader.logger)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.stop()) })

	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the write")
	}

	loader.mu.Lock()
	cached := loader.cached
	loader.mu.Unlock()
	assert.Nil(t, cached)
}

func TestDatasetWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "world.geojson")

	changed := make(chan struct{}, 8)
	w, err := newDatasetWatcher(path, func() { changed <- struct{}{} }, slog.Default())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	select {
	case <-changed:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.stop())
}
