package rangeset

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// ErrNotCanonical is returned when ranges are inverted, unsorted,
// overlapping or touching.
var ErrNotCanonical = errors.New("rangeset: set is not canonical")

// Set is an ascending sequence of disjoint, non-touching ranges as
// produced by Merge.
type Set []Range

// Validate checks the Set invariants: each range is valid and for every
// neighbouring pair b.Lower > a.Upper + 1.
func (s Set) Validate() error {
	for i, r := range s {
		if !r.Valid() {
			return fmt.Errorf("%w: range %d %s inverted", ErrNotCanonical, i, r)
		}
		if i > 0 {
			prev := s[i-1]
			if r.Lower < prev.Lower || prev.Touches(r) {
				return fmt.Errorf("%w: range %d %s touches %s", ErrNotCanonical, i, r, prev)
			}
		}
	}
	return nil
}

// Contains reports whether v lies in any range of the set.
func (s Set) Contains(v uint64) bool {
	// First range whose upper bound reaches v.
	i := sort.Search(len(s), func(i int) bool { return s[i].Upper >= v })
	return i < len(s) && s[i].Lower <= v
}

// All returns an iterator over the ranges.
func (s Set) All() iter.Seq[Range] {
	return slices.Values(s)
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	return slices.Clone(s)
}

// Cardinality returns the number of values covered by the set, saturating
// at the maximum uint64.
func (s Set) Cardinality() uint64 {
	var n uint64
	for _, r := range s {
		w := r.Width()
		if n+w+1 < n || w+1 == 0 {
			return ^uint64(0)
		}
		n += w + 1
	}
	return n
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
