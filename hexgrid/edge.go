package hexgrid

import (
	"fmt"
	"math"
)

// DefaultResolutionFactor scales an edge length before it is compared to a
// radius. A resolution is accepted once its edge is three times the radius.
const DefaultResolutionFactor = 3.0

// EdgeLength pairs a resolution with its approximate hexagon edge length.
type EdgeLength struct {
	Resolution Resolution
	Meters     float64
}

// Sentinel terminates an edge table: any radius resolves to resolution 0.
var Sentinel = EdgeLength{Resolution: MinResolution, Meters: math.Inf(1)}

// EdgeTable maps resolutions to edge lengths, ordered finest to coarsest.
//
// An EdgeTable is immutable and safe for concurrent use.
// The zero value is an empty table.
type EdgeTable struct {
	entries []EdgeLength
}

// NewEdgeTable validates and copies entries. Entries must be ordered from
// finest to coarsest resolution with strictly increasing edge lengths.
func NewEdgeTable(entries ...EdgeLength) (EdgeTable, error) {
	if len(entries) == 0 {
		return EdgeTable{}, ErrEmptyEdgeTable
	}

	for i, e := range entries {
		if !e.Resolution.Valid() {
			return EdgeTable{}, fmt.Errorf("%w: entry %d resolution %d", ErrMalformedEdgeTable, i, e.Resolution)
		}
		if math.IsNaN(e.Meters) || e.Meters <= 0 {
			return EdgeTable{}, fmt.Errorf("%w: entry %d edge length %v", ErrMalformedEdgeTable, i, e.Meters)
		}
		if i == 0 {
			continue
		}
		prev := entries[i-1]
		if e.Meters <= prev.Meters {
			return EdgeTable{}, fmt.Errorf("%w: entry %d edge length %v not above %v", ErrMalformedEdgeTable, i, e.Meters, prev.Meters)
		}
		if e.Resolution > prev.Resolution {
			return EdgeTable{}, fmt.Errorf("%w: entry %d resolution %d finer than %d", ErrMalformedEdgeTable, i, e.Resolution, prev.Resolution)
		}
	}

	return EdgeTable{entries: append([]EdgeLength(nil), entries...)}, nil
}

// MustEdgeTable is like NewEdgeTable but panics on error.
func MustEdgeTable(entries ...EdgeLength) EdgeTable {
	t, err := NewEdgeTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// defaultEdgeTable holds the average H3 hexagon edge lengths.
var defaultEdgeTable = MustEdgeTable(
	EdgeLength{15, 0.509713},
	EdgeLength{14, 1.348575},
	EdgeLength{13, 3.559893},
	EdgeLength{12, 9.415526},
	EdgeLength{11, 24.910561},
	EdgeLength{10, 65.907807},
	EdgeLength{9, 174.375668},
	EdgeLength{8, 461.354684},
	EdgeLength{7, 1220.629759},
	EdgeLength{6, 3229.482772},
	EdgeLength{5, 8544.408276},
	EdgeLength{4, 22606.3794},
	EdgeLength{3, 59810.85794},
	EdgeLength{2, 158244.6558},
	EdgeLength{1, 418676.0055},
	EdgeLength{0, 1107712.591},
	Sentinel,
)

// DefaultEdgeTable returns the table of average H3 edge lengths for
// resolutions 15 to 0, terminated by Sentinel.
func DefaultEdgeTable() EdgeTable {
	return defaultEdgeTable
}

// Len returns the number of entries, sentinel included.
func (t EdgeTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table entries.
func (t EdgeTable) Entries() []EdgeLength {
	return append([]EdgeLength(nil), t.entries...)
}

// EdgeMeters returns the edge length recorded for res.
func (t EdgeTable) EdgeMeters(res Resolution) (float64, bool) {
	for _, e := range t.entries {
		if e.Resolution == res && !math.IsInf(e.Meters, 1) {
			return e.Meters, true
		}
	}
	return 0, false
}

// SelectResolution returns the finest resolution whose edge length, scaled
// by DefaultResolutionFactor, exceeds radiusMeters.
func (t EdgeTable) SelectResolution(radiusMeters float64) (Resolution, error) {
	return t.Select(radiusMeters, DefaultResolutionFactor)
}

// Select is SelectResolution with an explicit edge factor.
//
// Larger radii never select a finer resolution.
func (t EdgeTable) Select(radiusMeters, factor float64) (Resolution, error) {
	if len(t.entries) == 0 {
		return 0, ErrEmptyEdgeTable
	}
	if err := checkRadius(radiusMeters); err != nil {
		return 0, err
	}
	if math.IsNaN(factor) || factor <= 0 {
		return 0, fmt.Errorf("%w: resolution factor %v", ErrConfiguration, factor)
	}

	for _, e := range t.entries {
		if e.Meters*factor > radiusMeters {
			return e.Resolution, nil
		}
	}

	return 0, fmt.Errorf("%w: %v m", ErrNoResolution, radiusMeters)
}

func checkRadius(radiusMeters float64) error {
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) || radiusMeters < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, radiusMeters)
	}
	return nil
}
