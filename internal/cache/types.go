package cache

import "math"

// Key identifies a radius query. Coordinates are compared by their exact
// float64 bit patterns; callers that want hits for nearby points must
// quantize before building the key.
type Key struct {
	Lat    uint64
	Lon    uint64
	Radius uint64
}

// NewKey builds a Key from a query.
func NewKey(lat, lon, radiusMeters float64) Key {
	return Key{
		Lat:    math.Float64bits(lat),
		Lon:    math.Float64bits(lon),
		Radius: math.Float64bits(radiusMeters),
	}
}
