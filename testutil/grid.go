package testutil

import (
	"fmt"
	"math"

	"github.com/hupe1980/hexrange/hexgrid"
)

const (
	baseRows = 11
	baseCols = 11

	kmPerDegree = hexgrid.EarthRadiusMeters * math.Pi / 180 / 1000
)

// Grid is a deterministic hexgrid.Grid for tests.
//
// It is a quadtree over latitude/longitude laid out in the hexgrid
// identifier format: 11x11 base cells, four children per cell (digits 0..3)
// and square k-rings (Chebyshev distance). The hierarchy is exact, so every
// point of a cell lies in exactly one of its children.
type Grid struct{}

// NewGrid returns a synthetic grid.
func NewGrid() *Grid {
	return &Grid{}
}

// CellOf implements hexgrid.Grid.
func (g *Grid) CellOf(lat, lon float64, res hexgrid.Resolution) (hexgrid.Cell, error) {
	if !res.Valid() {
		return 0, fmt.Errorf("%w: %d", hexgrid.ErrInvalidResolution, res)
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, fmt.Errorf("testutil: latitude %v out of range", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("testutil: longitude %v out of range", lon)
	}

	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}

	n := cellsPerAxis(res)
	iy := min(int(((lat+90)/180)*float64(n)), n-1)
	ix := min(int((lon/360)*float64(n)), n-1)

	return encode(res, ix, iy)
}

// KRing implements hexgrid.Grid.
func (g *Grid) KRing(cell hexgrid.Cell, k int) ([]hexgrid.Cell, error) {
	if k < 0 {
		return nil, fmt.Errorf("testutil: negative k %d", k)
	}
	res, ix, iy, err := decode(cell)
	if err != nil {
		return nil, err
	}

	n := cellsPerAxis(res)
	seen := make(map[hexgrid.Cell]struct{})
	out := make([]hexgrid.Cell, 0, (2*k+1)*(2*k+1))

	for dy := -k; dy <= k; dy++ {
		y := iy + dy
		if y < 0 || y >= n {
			continue
		}
		for dx := -k; dx <= k; dx++ {
			x := ((ix+dx)%n + n) % n
			c, err := encode(res, x, y)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	return out, nil
}

// CellRadiusKm implements hexgrid.Grid. It reports a third of the shorter
// cell side so that the default ring factor over-covers the radius.
func (g *Grid) CellRadiusKm(cell hexgrid.Cell) (float64, error) {
	res, _, iy, err := decode(cell)
	if err != nil {
		return 0, err
	}

	n := float64(cellsPerAxis(res))
	latSide := 180 / n
	centerLat := -90 + (float64(iy)+0.5)*latSide

	latKm := latSide * kmPerDegree
	lonKm := (360 / n) * kmPerDegree * math.Cos(centerLat*math.Pi/180)

	return min(latKm, lonKm) / 3, nil
}

// EdgeTable returns an edge table matching the grid's cell sides.
func EdgeTable() hexgrid.EdgeTable {
	entries := make([]hexgrid.EdgeLength, 0, hexgrid.MaxResolution+2)
	for res := hexgrid.MaxResolution; res >= hexgrid.MinResolution; res-- {
		side := 180 / float64(cellsPerAxis(res))
		entries = append(entries, hexgrid.EdgeLength{Resolution: res, Meters: side * kmPerDegree * 1000})
	}
	entries = append(entries, hexgrid.Sentinel)
	return hexgrid.MustEdgeTable(entries...)
}

// Children returns the seven children (digits 0..6) of cell, using only the
// identifier layout.
func Children(cell hexgrid.Cell) []hexgrid.Cell {
	res := cell.Resolution()
	if res >= hexgrid.MaxResolution {
		return nil
	}
	digits := make([]int, res+1)
	for level := hexgrid.Resolution(1); level <= res; level++ {
		digits[level-1] = cell.Digit(level)
	}

	out := make([]hexgrid.Cell, 0, 7)
	for d := 0; d < 7; d++ {
		digits[res] = d
		c, err := hexgrid.NewCell(cell.BaseCell(), digits...)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// RandomDescendant walks random children of cell down to resolution 15.
func RandomDescendant(rng *RNG, cell hexgrid.Cell) hexgrid.Cell {
	for cell.Resolution() < hexgrid.MaxResolution {
		children := Children(cell)
		cell = children[rng.Intn(len(children))]
	}
	return cell
}

func cellsPerAxis(res hexgrid.Resolution) int {
	return baseRows << uint(res)
}

func encode(res hexgrid.Resolution, ix, iy int) (hexgrid.Cell, error) {
	r := uint(res)
	row, col := iy>>r, ix>>r

	digits := make([]int, res)
	for level := uint(1); level <= r; level++ {
		shift := r - level
		digits[level-1] = ((iy>>shift)&1)<<1 | (ix>>shift)&1
	}

	return hexgrid.NewCell(row*baseCols+col, digits...)
}

func decode(cell hexgrid.Cell) (hexgrid.Resolution, int, int, error) {
	if cell.Mode() != hexgrid.CellMode || cell.BaseCell() >= baseRows*baseCols {
		return 0, 0, 0, fmt.Errorf("testutil: invalid cell %s", cell)
	}

	res := cell.Resolution()
	row, col := cell.BaseCell()/baseCols, cell.BaseCell()%baseCols
	iy, ix := row, col

	for level := hexgrid.Resolution(1); level <= hexgrid.MaxResolution; level++ {
		d := cell.Digit(level)
		if level > res {
			if d != 7 {
				return 0, 0, 0, fmt.Errorf("testutil: invalid cell %s", cell)
			}
			continue
		}
		if d > 3 {
			return 0, 0, 0, fmt.Errorf("testutil: invalid cell %s", cell)
		}
		iy = iy<<1 | d>>1
		ix = ix<<1 | d&1
	}

	return res, ix, iy, nil
}
