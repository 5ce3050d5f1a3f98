// Package testutil provides testing utilities for hexrange.
//
// This package is intended for use in tests and benchmarks only.
//
// # Synthetic Grid
//
// Grid implements hexgrid.Grid without any projection math: a quadtree over
// latitude/longitude encoded in the hexgrid identifier layout. Pair it with
// EdgeTable so resolution selection matches the grid's cell sizes.
//
//	idx, _ := hexrange.New(testutil.NewGrid(),
//	    hexrange.WithEdgeTable(testutil.EdgeTable()))
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.PointsAround(testutil.Point{Lat: 52.52, Lon: 13.40}, 5000, 1000)
package testutil
