package hexgrid

import (
	"fmt"

	"github.com/hupe1980/hexrange/rangeset"
)

// ProjectRange returns the inclusive band of compact indexes covering every
// resolution 15 descendant of cell.
//
// Unused digit levels of a coarser cell are all ones, so its own compact
// index is the upper bound of the band and clearing the 3*(15-res) low bits
// gives the lower bound. A resolution 15 cell yields a singleton range.
func ProjectRange(cell Cell) (rangeset.Range, error) {
	res := cell.Resolution()
	if !res.Valid() {
		return rangeset.Range{}, fmt.Errorf("%w: cell %s resolution %d exceeds %d", ErrInvariantViolation, cell, res, MaxResolution)
	}

	bits := uint(MaxResolution-res) * digitBits
	upper := uint64(ToCompact(cell))
	size := uint64(1)<<bits - 1

	if upper < size {
		return rangeset.Range{}, fmt.Errorf("%w: cell %s range size %d underflows compact index %d", ErrInvariantViolation, cell, size, upper)
	}

	return rangeset.Range{Lower: upper - size, Upper: upper}, nil
}

// ProjectRanges projects every cell of a ring. The result is unmerged and in
// input order.
func ProjectRanges(cells []Cell) ([]rangeset.Range, error) {
	out := make([]rangeset.Range, 0, len(cells))
	for _, c := range cells {
		r, err := ProjectRange(c)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
