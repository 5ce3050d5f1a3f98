package rangeset

import (
	"iter"
	"slices"
)

// Union merges overlapping and adjacent ranges.
//
// The result is yielded lazily in ascending Lower order. Ranges are folded
// while the next Lower is at most the current Upper + 1, so a gap of zero
// unused values counts as touching. The input slice is not modified.
func Union(ranges []Range) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		if len(ranges) == 0 {
			return
		}

		sorted := slices.Clone(ranges)
		slices.SortStableFunc(sorted, func(a, b Range) int {
			switch {
			case a.Lower < b.Lower:
				return -1
			case a.Lower > b.Lower:
				return 1
			default:
				return 0
			}
		})

		cur := sorted[0]
		for _, next := range sorted[1:] {
			if cur.Touches(next) {
				cur.Upper = max(cur.Upper, next.Upper)
				continue
			}
			if !yield(cur) {
				return
			}
			cur = next
		}
		yield(cur)
	}
}

// Merge collects Union(ranges) into a Set.
func Merge(ranges []Range) Set {
	var s Set
	for r := range Union(ranges) {
		s = append(s, r)
	}
	return s
}

// Collect merges an arbitrary range sequence into a Set.
func Collect(seq iter.Seq[Range]) Set {
	return Merge(slices.Collect(seq))
}
