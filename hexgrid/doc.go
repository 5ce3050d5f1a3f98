// Package hexgrid turns hierarchical hexagonal grid cells into ordered
// integer ranges.
//
// The grid itself (coordinate to cell conversion, k-rings) is consumed
// through the Grid interface; this package only reads the cell identifier
// layout:
//
//   - ToCompact drops the mode and resolution prefix, leaving a 52-bit
//     CompactIndex that orders cells by base cell and child path.
//   - ProjectRange maps a cell to the closed band of compact indexes held by
//     all of its resolution 15 descendants.
//   - EdgeTable.SelectResolution picks the finest resolution whose edge
//     length comfortably exceeds a search radius.
//   - EnumerateRing computes how many hex rings cover the radius and asks
//     the Grid for them.
//
// Example:
//
//	res, _ := hexgrid.DefaultEdgeTable().SelectResolution(500)
//	center, _ := grid.CellOf(52.52, 13.40, res)
//	ring, _ := hexgrid.EnumerateRing(grid, center, 500, hexgrid.DefaultRingFactor)
//	ranges, _ := hexgrid.ProjectRanges(ring.Cells)
package hexgrid
