// Package geo provides great-circle distance helpers and the world countries dataset loader.
package geo

import (
	"sort"

	"gaia/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DistanceKm returns the haversine distance between two locations in kilometers.
func DistanceKm(a, b entity.Location) float64 {
	return geo.DistanceHaversine(toPoint(a), toPoint(b)) / 1000
}

// WithinRadius returns the users whose stored location lies within radiusKm of origin,
// nearest first. Users without a location are skipped.
func WithinRadius(origin entity.Location, users []*entity.User, radiusKm float64) []entity.NearbyUser {
	nearby := make([]entity.NearbyUser, 0, len(users))
	center := toPoint(origin)

	for _, u := range users {
		if u == nil || u.Location == nil {
			continue
		}

		d := geo.DistanceHaversine(center, toPoint(*u.Location)) / 1000
		if d <= radiusKm {
			nearby = append(nearby, entity.NearbyUser{User: u, DistanceKm: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby
}

// orb points are (longitude, latitude).
func toPoint(loc entity.Location) orb.Point {
	return orb.Point{loc.Longitude, loc.Latitude}
}
