package h3grid

import (
	"fmt"
	"math"

	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/uber/h3-go/v4"
)

// Grid implements hexgrid.Grid on the H3 library.
//
// Grid is stateless and safe for concurrent use.
type Grid struct{}

var _ hexgrid.Grid = (*Grid)(nil)

// New returns an H3 backed grid.
func New() *Grid {
	return &Grid{}
}

// CellOf implements hexgrid.Grid.
func (g *Grid) CellOf(lat, lon float64, res hexgrid.Resolution) (hexgrid.Cell, error) {
	if !res.Valid() {
		return 0, fmt.Errorf("%w: %d", hexgrid.ErrInvalidResolution, res)
	}
	if !finite(lat) || !finite(lon) || lat < -90 || lat > 90 {
		return 0, &hexgrid.LookupError{Op: "cell of", Err: fmt.Errorf("coordinate (%v, %v) out of range", lat, lon)}
	}

	c, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), int(res))
	if err != nil {
		return 0, &hexgrid.LookupError{Op: "cell of", Err: err}
	}

	return hexgrid.Cell(c), nil
}

// KRing implements hexgrid.Grid.
func (g *Grid) KRing(cell hexgrid.Cell, k int) ([]hexgrid.Cell, error) {
	disk, err := h3.GridDisk(h3.Cell(cell), k)
	if err != nil {
		return nil, &hexgrid.LookupError{Op: "k-ring", Err: err}
	}

	out := make([]hexgrid.Cell, 0, len(disk))
	for _, c := range disk {
		// GridDisk pads pentagon distortion with zero cells.
		if c == 0 {
			continue
		}
		out = append(out, hexgrid.Cell(c))
	}

	return out, nil
}

// CellRadiusKm implements hexgrid.Grid. The circumradius of a regular
// hexagon equals its edge, so the average edge length for the cell's
// resolution is reported.
func (g *Grid) CellRadiusKm(cell hexgrid.Cell) (float64, error) {
	if !h3.Cell(cell).IsValid() {
		return 0, &hexgrid.LookupError{Op: "cell radius", Err: fmt.Errorf("invalid cell %s", cell)}
	}

	km, err := h3.HexagonEdgeLengthAvgKm(int(cell.Resolution()))
	if err != nil {
		return 0, &hexgrid.LookupError{Op: "cell radius", Err: err}
	}

	return km, nil
}

// Center returns the center coordinate of cell in degrees.
func (g *Grid) Center(cell hexgrid.Cell) (lat, lon float64, err error) {
	ll, err := h3.CellToLatLng(h3.Cell(cell))
	if err != nil {
		return 0, 0, &hexgrid.LookupError{Op: "center", Err: err}
	}
	return ll.Lat, ll.Lng, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
