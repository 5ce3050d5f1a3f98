package hexgrid

import "math"

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371008.8

// GreatCircleMeters returns the haversine distance between two coordinates
// given in degrees.
func GreatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}
