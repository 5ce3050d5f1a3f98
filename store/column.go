package store

import (
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/hexrange/rangeset"
)

// column stores (compact index, id) pairs.
// Invariant: len(values) == len(ids).
// Invariant when sorted: values[i] belongs to ids[i], ascending by value.
type column struct {
	// values is the compact index column (sorted when sealed)
	values []uint64

	// ids is the entity id column (aligned with values)
	ids []uint64

	// sorted is false after appends until the next seal
	sorted bool

	// stale counts entries superseded by an update or delete. They are
	// dropped on the next seal.
	stale int
}

func newColumn(capacity int) column {
	return column{
		values: make([]uint64, 0, capacity),
		ids:    make([]uint64, 0, capacity),
		sorted: true,
	}
}

func (c *column) append(value, id uint64) {
	if n := len(c.values); n > 0 && c.sorted {
		last := c.values[n-1]
		c.sorted = value > last || (value == last && id >= c.ids[n-1])
	}
	c.values = append(c.values, value)
	c.ids = append(c.ids, id)
}

// seal drops stale entries and sorts the column. live reports whether an
// entry is current.
func (c *column) seal(live func(value, id uint64) bool) {
	// 1. Compact stale entries in a single pass
	if c.stale > 0 {
		w := 0
		for r := range c.values {
			if !live(c.values[r], c.ids[r]) {
				continue
			}
			c.values[w] = c.values[r]
			c.ids[w] = c.ids[r]
			w++
		}
		c.values = c.values[:w]
		c.ids = c.ids[:w]
		c.stale = 0
	}

	// 2. Sort if needed
	if !c.sorted {
		c.sort()
	}
}

// sort orders the column by value using an indirect sort to keep ids aligned.
func (c *column) sort() {
	indices := make([]int, len(c.values))
	for i := range indices {
		indices[i] = i
	}
	slices.SortFunc(indices, func(a, b int) int {
		va, vb := c.values[a], c.values[b]
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		// Stable order by id for equal values
		if c.ids[a] < c.ids[b] {
			return -1
		}
		if c.ids[a] > c.ids[b] {
			return 1
		}
		return 0
	})

	values := make([]uint64, len(c.values))
	ids := make([]uint64, len(c.ids))
	for i, idx := range indices {
		values[i] = c.values[idx]
		ids[i] = c.ids[idx]
	}
	c.values = values
	c.ids = ids
	c.sorted = true
}

// queryRange adds the ids whose value lies in r to dst.
// The column must be sealed.
func (c *column) queryRange(r rangeset.Range, dst *roaring64.Bitmap) int {
	lo := sort.Search(len(c.values), func(i int) bool { return c.values[i] >= r.Lower })
	hi := sort.Search(len(c.values), func(i int) bool { return c.values[i] > r.Upper })
	if hi <= lo {
		return 0
	}
	dst.AddMany(c.ids[lo:hi])
	return hi - lo
}
