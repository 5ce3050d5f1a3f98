package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/hexrange/hexgrid"
)

// Point is a coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// PointsAround returns n points scattered uniformly by area within
// maxMeters of the center.
func (r *RNG) PointsAround(center Point, maxMeters float64, n int) []Point {
	const metersPerDegree = hexgrid.EarthRadiusMeters * math.Pi / 180

	out := make([]Point, n)
	for i := range out {
		d := maxMeters * math.Sqrt(r.Float64())
		theta := 2 * math.Pi * r.Float64()

		dLat := d * math.Cos(theta) / metersPerDegree
		dLon := d * math.Sin(theta) / (metersPerDegree * math.Cos(center.Lat*math.Pi/180))

		out[i] = Point{Lat: center.Lat + dLat, Lon: center.Lon + dLon}
	}
	return out
}
