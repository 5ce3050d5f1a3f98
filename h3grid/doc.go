// Package h3grid adapts the H3 hierarchical hexagonal grid
// (github.com/uber/h3-go) to hexgrid.Grid.
//
// H3 identifiers already use the hexgrid bit layout, so cells pass through
// unchanged and their compact indexes are the ones any other H3 binding
// produces for the same coordinate.
package h3grid
