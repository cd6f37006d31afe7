package geospatial

import (
	"math"

	"github.com/sentuhanid/geomatch/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in kilometers between two
// points. It is symmetric, zero for identical points, and defined for every
// valid coordinate pair; it is the service's only always-available distance
// source.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceKm is Haversine over Coordinate values.
func DistanceKm(a, b domain.Coordinate) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}

// BoundingBox returns a box around a point with the given radius in
// kilometers, for cheap SQL prefilters ahead of the exact distance check.
func BoundingBox(lat, lng, radiusKm float64) (minLat, minLng, maxLat, maxLng float64) {
	latDelta := radiusKm / 111.32
	lngDelta := radiusKm / (111.32 * math.Cos(toRad(lat)))

	return lat - latDelta, lng - lngDelta, lat + latDelta, lng + lngDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
