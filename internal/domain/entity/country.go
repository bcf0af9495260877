package entity

import "time"

// CountryDataset is the world countries GeoJSON served to the map.
type CountryDataset struct {
	Raw          []byte // Original FeatureCollection document.
	FeatureCount int
	// GeometryTypes counts features by geometry type; features without geometry count as "unknown".
	GeometryTypes map[string]int
	// PropertyNames is the sorted union of property keys across all features.
	PropertyNames []string
	ModifiedAt    time.Time
	ETag          string
}
