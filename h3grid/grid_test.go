package h3grid_test

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/hexrange"
	"github.com/hupe1980/hexrange/h3grid"
	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// San Francisco reference cell from the H3 documentation.
const (
	sfLat  = 37.775938728915946
	sfLon  = -122.41795063018799
	sfCell = "8928308280fffff"
)

func TestGrid_CellOf(t *testing.T) {
	g := h3grid.New()

	c, err := g.CellOf(sfLat, sfLon, 9)
	require.NoError(t, err)
	assert.Equal(t, sfCell, c.String())
	assert.Equal(t, hexgrid.Resolution(9), c.Resolution())
	assert.Equal(t, hexgrid.CellMode, c.Mode())

	for level := hexgrid.Resolution(10); level <= hexgrid.MaxResolution; level++ {
		assert.Equal(t, 7, c.Digit(level))
	}
}

func TestGrid_CellOfErrors(t *testing.T) {
	g := h3grid.New()

	tests := []struct {
		name     string
		lat, lon float64
		res      hexgrid.Resolution
	}{
		{"latitude", 91, 0, 9},
		{"nan", math.NaN(), 0, 9},
		{"inf", 0, math.Inf(1), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.CellOf(tt.lat, tt.lon, tt.res)
			assert.ErrorIs(t, err, hexgrid.ErrLookup)
		})
	}

	_, err := g.CellOf(0, 0, 16)
	assert.ErrorIs(t, err, hexgrid.ErrInvalidResolution)
}

func TestGrid_KRing(t *testing.T) {
	g := h3grid.New()

	c, err := hexgrid.ParseCell(sfCell)
	require.NoError(t, err)

	ring, err := g.KRing(c, 0)
	require.NoError(t, err)
	assert.Equal(t, []hexgrid.Cell{c}, ring)

	ring, err = g.KRing(c, 1)
	require.NoError(t, err)
	assert.Len(t, ring, 7)
	assert.Contains(t, ring, c)

	ring, err = g.KRing(c, 2)
	require.NoError(t, err)
	assert.Len(t, ring, 19)
}

func TestGrid_CellRadiusKm(t *testing.T) {
	g := h3grid.New()

	c, err := hexgrid.ParseCell(sfCell)
	require.NoError(t, err)

	km, err := g.CellRadiusKm(c)
	require.NoError(t, err)

	meters, ok := hexgrid.DefaultEdgeTable().EdgeMeters(9)
	require.True(t, ok)
	assert.InDelta(t, meters, km*1000, 1)

	_, err = g.CellRadiusKm(0)
	assert.ErrorIs(t, err, hexgrid.ErrLookup)
}

func TestGrid_CenterRoundTrip(t *testing.T) {
	g := h3grid.New()

	c, err := g.CellOf(sfLat, sfLon, 12)
	require.NoError(t, err)

	lat, lon, err := g.Center(c)
	require.NoError(t, err)

	again, err := g.CellOf(lat, lon, 12)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestGrid_DescendantsInProjectedRange(t *testing.T) {
	g := h3grid.New()
	rng := testutil.NewRNG(7)

	parent, err := g.CellOf(sfLat, sfLon, 8)
	require.NoError(t, err)

	r, err := hexgrid.ProjectRange(parent)
	require.NoError(t, err)

	plat, plon, err := g.Center(parent)
	require.NoError(t, err)

	// Points well inside the parent resolve to resolution 15 descendants.
	for _, p := range rng.PointsAround(testutil.Point{Lat: plat, Lon: plon}, 50, 200) {
		leaf, err := g.CellOf(p.Lat, p.Lon, hexgrid.MaxResolution)
		require.NoError(t, err)
		assert.True(t, r.Contains(uint64(leaf.Compact())), "leaf %s outside %s", leaf, r)
	}
}

func TestIndex_NearPointsMatched(t *testing.T) {
	idx, err := hexrange.New(h3grid.New())
	require.NoError(t, err)

	rng := testutil.NewRNG(42)
	center := testutil.Point{Lat: 52.5163, Lon: 13.3777}

	for _, radius := range []float64{50, 500, 5000} {
		pred, err := idx.BuildRadiusPredicate(context.Background(), center.Lat, center.Lon, radius)
		require.NoError(t, err)

		res, err := idx.SelectResolution(radius)
		require.NoError(t, err)
		edge, ok := idx.EdgeTable().EdgeMeters(res)
		require.True(t, ok)

		// The hexagonal ring always reaches at least half an edge beyond
		// the center cell.
		for _, p := range rng.PointsAround(center, math.Min(radius, edge/2), 200) {
			v, err := idx.IndexPoint(p.Lat, p.Lon)
			require.NoError(t, err)
			assert.True(t, pred.Matches(uint64(v)))
		}
	}
}
