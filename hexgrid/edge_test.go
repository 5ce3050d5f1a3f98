package hexgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeTable_SelectResolution(t *testing.T) {
	tbl, err := NewEdgeTable(
		EdgeLength{Resolution: 10, Meters: 66},
		EdgeLength{Resolution: 9, Meters: 174},
		EdgeLength{Resolution: 8, Meters: 461},
		Sentinel,
	)
	require.NoError(t, err)

	tests := []struct {
		radius float64
		want   Resolution
	}{
		{0, 10},
		{100, 10}, // 66*3 = 198 > 100
		{197.9, 10},
		{198, 9}, // not strictly greater
		{500, 9},
		{1382, 8},
		{1383, 0}, // sentinel
		{1e12, 0},
	}

	for _, tt := range tests {
		got, err := tbl.SelectResolution(tt.radius)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "radius %v", tt.radius)
	}
}

func TestEdgeTable_Monotonic(t *testing.T) {
	tbl := DefaultEdgeTable()

	prev := MaxResolution
	for radius := 0.0; radius < 5e6; radius = radius*1.3 + 1 {
		res, err := tbl.SelectResolution(radius)
		require.NoError(t, err)
		assert.LessOrEqual(t, res, prev, "radius %v", radius)
		prev = res
	}
}

func TestEdgeTable_Default(t *testing.T) {
	tbl := DefaultEdgeTable()
	assert.Equal(t, 17, tbl.Len())

	m, ok := tbl.EdgeMeters(9)
	assert.True(t, ok)
	assert.InDelta(t, 174.38, m, 0.01)

	res, err := tbl.SelectResolution(1)
	require.NoError(t, err)
	assert.Equal(t, MaxResolution, res)

	res, err = tbl.SelectResolution(100)
	require.NoError(t, err)
	assert.Equal(t, Resolution(10), res)
}

func TestEdgeTable_Errors(t *testing.T) {
	_, err := EdgeTable{}.SelectResolution(1)
	assert.ErrorIs(t, err, ErrEmptyEdgeTable)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewEdgeTable()
	assert.ErrorIs(t, err, ErrEmptyEdgeTable)

	noSentinel := MustEdgeTable(EdgeLength{Resolution: 9, Meters: 10})
	_, err = noSentinel.SelectResolution(100)
	assert.ErrorIs(t, err, ErrNoResolution)
	assert.ErrorIs(t, err, ErrConfiguration)

	for _, radius := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = DefaultEdgeTable().SelectResolution(radius)
		assert.ErrorIs(t, err, ErrInvalidRadius)
	}

	_, err = DefaultEdgeTable().Select(10, 0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewEdgeTable_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		entries []EdgeLength
	}{
		{"resolution out of range", []EdgeLength{{Resolution: 16, Meters: 1}}},
		{"non-positive edge", []EdgeLength{{Resolution: 3, Meters: 0}}},
		{"nan edge", []EdgeLength{{Resolution: 3, Meters: math.NaN()}}},
		{"decreasing edge", []EdgeLength{{Resolution: 9, Meters: 10}, {Resolution: 8, Meters: 5}}},
		{"finer after coarser", []EdgeLength{{Resolution: 8, Meters: 10}, {Resolution: 9, Meters: 50}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEdgeTable(tt.entries...)
			assert.ErrorIs(t, err, ErrMalformedEdgeTable)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}

	assert.Panics(t, func() { MustEdgeTable() })
}

func TestEdgeTable_EntriesIsCopy(t *testing.T) {
	tbl := DefaultEdgeTable()
	entries := tbl.Entries()
	entries[0].Meters = 1e9

	m, ok := tbl.EdgeMeters(MaxResolution)
	assert.True(t, ok)
	assert.InDelta(t, 0.509713, m, 1e-9)
}
