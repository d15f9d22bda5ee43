package utils

import "math"

const earthRadiusKm = 6371

// DistanceKm calculates the great-circle distance between two GPS
// coordinates using the haversine formula. Result is in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	latDistance := toRadians(lat2 - lat1)
	lonDistance := toRadians(lon2 - lon1)

	a := math.Sin(latDistance/2)*math.Sin(latDistance/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(lonDistance/2)*math.Sin(lonDistance/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinRadius checks if two locations are within the specified radius.
func WithinRadius(lat1, lon1, lat2, lon2, radiusKm float64) bool {
	return DistanceKm(lat1, lon1, lat2, lon2) <= radiusKm
}

// BoundingBox computes a square search window around a point for cheap geo
// pre-filtering. It approximates 111 km per degree of latitude; the
// longitude delta widens with latitude and diverges toward the poles, so
// callers must not pass |lat| near 90. Membership is always re-verified
// with WithinRadius afterwards.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0
	lngDelta := radiusKm / (111.0 * math.Cos(toRadians(lat)))

	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
