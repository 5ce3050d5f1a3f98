package hexgrid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingSize(t *testing.T) {
	tests := []struct {
		name         string
		cellRadiusKm float64
		radius       float64
		want         int
	}{
		{"zero radius", 0.5, 0, 1},
		{"below one ring", 0.5, 1249, 1},
		{"exactly one ring", 0.5, 1250, 2},
		{"several rings", 0.5, 5000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := hexgrid.RingSize(tt.cellRadiusKm, tt.radius, hexgrid.DefaultRingFactor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestRingSize_Errors(t *testing.T) {
	_, err := hexgrid.RingSize(0.1, -1, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, hexgrid.ErrInvalidRadius)

	_, err = hexgrid.RingSize(0, 100, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)

	_, err = hexgrid.RingSize(math.NaN(), 100, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)

	_, err = hexgrid.RingSize(0.1, 100, 0)
	assert.ErrorIs(t, err, hexgrid.ErrConfiguration)

	_, err = hexgrid.RingSize(0.001, 1e9, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, hexgrid.ErrConfiguration)
}

func TestEnumerateRing(t *testing.T) {
	g := testutil.NewGrid()

	center, err := g.CellOf(52.52, 13.40, 9)
	require.NoError(t, err)

	ring, err := hexgrid.EnumerateRing(g, center, 0, hexgrid.DefaultRingFactor)
	require.NoError(t, err)
	assert.Equal(t, 1, ring.K)
	assert.Equal(t, center, ring.Center)
	assert.Len(t, ring.Cells, 9)
	assert.Equal(t, center, ring.Cells[0])

	radiusKm, err := g.CellRadiusKm(center)
	require.NoError(t, err)

	ring, err = hexgrid.EnumerateRing(g, center, radiusKm*1000*2.5*3.5, hexgrid.DefaultRingFactor)
	require.NoError(t, err)
	assert.Equal(t, 4, ring.K)
	assert.Len(t, ring.Cells, 81)
}

type stubGrid struct {
	ring      []hexgrid.Cell
	ringErr   error
	radiusErr error
}

func (s stubGrid) CellOf(lat, lon float64, res hexgrid.Resolution) (hexgrid.Cell, error) {
	return 0, errors.New("not implemented")
}

func (s stubGrid) KRing(cell hexgrid.Cell, k int) ([]hexgrid.Cell, error) {
	return s.ring, s.ringErr
}

func (s stubGrid) CellRadiusKm(cell hexgrid.Cell) (float64, error) {
	return 1, s.radiusErr
}

func TestDisk_CenterAlwaysIncluded(t *testing.T) {
	center, err := hexgrid.NewCell(1, 2)
	require.NoError(t, err)
	other, err := hexgrid.NewCell(1, 3)
	require.NoError(t, err)

	cells, err := hexgrid.Disk(stubGrid{}, center, 0)
	require.NoError(t, err)
	assert.Equal(t, []hexgrid.Cell{center}, cells)

	cells, err = hexgrid.Disk(stubGrid{ring: []hexgrid.Cell{other, center, other}}, center, 1)
	require.NoError(t, err)
	assert.Equal(t, []hexgrid.Cell{center, other}, cells)

	_, err = hexgrid.Disk(stubGrid{}, center, -1)
	assert.ErrorIs(t, err, hexgrid.ErrConfiguration)
}

func TestEnumerateRing_PropagatesLookupErrors(t *testing.T) {
	boom := errors.New("boom")
	center, err := hexgrid.NewCell(1, 2)
	require.NoError(t, err)

	_, err = hexgrid.EnumerateRing(stubGrid{ringErr: boom}, center, 10, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)

	var le *hexgrid.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "k-ring", le.Op)

	_, err = hexgrid.EnumerateRing(stubGrid{radiusErr: boom}, center, 10, hexgrid.DefaultRingFactor)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)
}

func TestWrapLookupError(t *testing.T) {
	boom := errors.New("boom")

	err := hexgrid.WrapLookupError("cell of", boom)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "hexgrid: cell of: boom", err.Error())

	inner := &hexgrid.LookupError{Op: "k-ring", Err: boom}
	wrapped := hexgrid.WrapLookupError("cell of", inner)
	assert.Same(t, inner, wrapped)
	assert.Equal(t, "hexgrid: k-ring: boom", wrapped.Error())
}

func TestProjectRange_Containment(t *testing.T) {
	rng := testutil.NewRNG(4711)
	g := testutil.NewGrid()

	for res := hexgrid.MinResolution; res < hexgrid.MaxResolution; res++ {
		c, err := g.CellOf(-12.5+float64(res), 77.3, res)
		require.NoError(t, err)

		r, err := hexgrid.ProjectRange(c)
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			d := testutil.RandomDescendant(rng, c)
			v := uint64(hexgrid.ToCompact(d))
			assert.True(t, r.Contains(v), "resolution %d descendant %s outside %s", res, d, r)
		}

		// The grid's own finest cell for the same point is a descendant too.
		fine, err := g.CellOf(-12.5+float64(res), 77.3, hexgrid.MaxResolution)
		require.NoError(t, err)
		assert.True(t, r.Contains(uint64(hexgrid.ToCompact(fine))))
	}
}

func TestProjectRange_ExcludesNonDescendants(t *testing.T) {
	a, err := hexgrid.NewCell(7, 1, 4)
	require.NoError(t, err)
	b, err := hexgrid.NewCell(7, 1, 5)
	require.NoError(t, err)

	r, err := hexgrid.ProjectRange(a)
	require.NoError(t, err)

	rng := testutil.NewRNG(1)
	for i := 0; i < 50; i++ {
		d := testutil.RandomDescendant(rng, b)
		assert.False(t, r.Contains(uint64(hexgrid.ToCompact(d))))
	}
}
