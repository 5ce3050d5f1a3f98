package hexgrid

import (
	"fmt"
	"math"
)

const (
	// DefaultRingFactor widens the per-ring coverage estimate to absorb the
	// mismatch between hexagonal rings and a circle.
	DefaultRingFactor = 2.5

	// MaxRingSize bounds k so a misconfigured factor cannot request an
	// unbounded k-ring.
	MaxRingSize = 1 << 10
)

// Ring is a center cell with the cells within K steps of it.
type Ring struct {
	Center Cell
	K      int
	Cells  []Cell
}

// RingSize returns the number of rings needed to cover radiusMeters:
//
//	k = floor(radiusMeters / (cellRadiusKm * factor * 1000)) + 1
func RingSize(cellRadiusKm, radiusMeters, factor float64) (int, error) {
	if err := checkRadius(radiusMeters); err != nil {
		return 0, err
	}
	if math.IsNaN(factor) || factor <= 0 {
		return 0, fmt.Errorf("%w: ring factor %v", ErrConfiguration, factor)
	}
	if math.IsNaN(cellRadiusKm) || math.IsInf(cellRadiusKm, 0) || cellRadiusKm <= 0 {
		return 0, &LookupError{Op: "cell radius", Err: fmt.Errorf("invalid radius %v km", cellRadiusKm)}
	}

	k := math.Floor(radiusMeters/(cellRadiusKm*factor*1000)) + 1
	if k > MaxRingSize {
		return 0, fmt.Errorf("%w: ring size %v exceeds %d", ErrConfiguration, k, MaxRingSize)
	}
	return int(k), nil
}

// EnumerateRing derives k for radiusMeters at the center's resolution and
// returns the k-ring around center.
func EnumerateRing(g Grid, center Cell, radiusMeters, factor float64) (Ring, error) {
	cellRadius, err := g.CellRadiusKm(center)
	if err != nil {
		return Ring{}, WrapLookupError("cell radius", err)
	}

	k, err := RingSize(cellRadius, radiusMeters, factor)
	if err != nil {
		return Ring{}, err
	}

	cells, err := Disk(g, center, k)
	if err != nil {
		return Ring{}, err
	}

	return Ring{Center: center, K: k, Cells: cells}, nil
}

// Disk returns the deduplicated k-ring around center. The center is always
// part of the result, including for k = 0.
func Disk(g Grid, center Cell, k int) ([]Cell, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: negative ring size %d", ErrConfiguration, k)
	}

	cells, err := g.KRing(center, k)
	if err != nil {
		return nil, WrapLookupError("k-ring", err)
	}

	seen := make(map[Cell]struct{}, len(cells)+1)
	out := make([]Cell, 0, len(cells)+1)

	seen[center] = struct{}{}
	out = append(out, center)

	for _, c := range cells {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out, nil
}
