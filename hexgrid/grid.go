package hexgrid

// Grid is the capability set consumed from a hierarchical hexagonal grid
// library. Implementations must be safe for concurrent read-only use.
type Grid interface {
	// CellOf returns the cell containing the coordinate at res.
	CellOf(lat, lon float64, res Resolution) (Cell, error)

	// KRing returns the cells within k hex steps of cell, cell included.
	KRing(cell Cell, k int) ([]Cell, error)

	// CellRadiusKm returns an approximate radius of cell in kilometres.
	CellRadiusKm(cell Cell) (float64, error)
}
