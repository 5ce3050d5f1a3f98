package store

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/hexrange/rangeset"
	"github.com/stretchr/testify/assert"
)

func TestColumn_AppendTracksOrder(t *testing.T) {
	c := newColumn(0)
	c.append(1, 10)
	c.append(5, 11)
	c.append(5, 12)
	assert.True(t, c.sorted)

	c.append(3, 13)
	assert.False(t, c.sorted)

	c.seal(nil)
	assert.True(t, c.sorted)
	assert.Equal(t, []uint64{1, 3, 5, 5}, c.values)
	assert.Equal(t, []uint64{10, 13, 11, 12}, c.ids)
}

func TestColumn_SealDropsStale(t *testing.T) {
	c := newColumn(4)
	c.append(7, 1)
	c.append(2, 2)
	c.append(9, 3)
	c.stale = 1

	c.seal(func(value, id uint64) bool { return id != 2 })

	assert.Equal(t, []uint64{7, 9}, c.values)
	assert.Equal(t, []uint64{1, 3}, c.ids)
	assert.Zero(t, c.stale)
}

func TestColumn_QueryRange(t *testing.T) {
	c := newColumn(0)
	for i, v := range []uint64{40, 10, 20, 30, 20} {
		c.append(v, uint64(i))
	}
	c.seal(nil)

	tests := []struct {
		name string
		r    rangeset.Range
		want []uint64
	}{
		{"inclusive bounds", rangeset.Range{Lower: 20, Upper: 30}, []uint64{2, 3, 4}},
		{"point", rangeset.Point(10), []uint64{1}},
		{"below", rangeset.Range{Lower: 0, Upper: 9}, []uint64{}},
		{"above", rangeset.Range{Lower: 41, Upper: 100}, []uint64{}},
		{"all", rangeset.Range{Lower: 0, Upper: ^uint64(0)}, []uint64{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := roaring64.NewBitmap()
			n := c.queryRange(tt.r, dst)
			assert.Equal(t, len(tt.want), n)
			assert.ElementsMatch(t, tt.want, dst.ToArray())
		})
	}
}
