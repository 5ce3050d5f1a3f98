// Package store is an in-memory reference query layer for compact index
// predicates.
//
// Entities are kept in a columnar layout (compact index and id columns,
// aligned and sorted by value). A predicate is evaluated with one binary
// search per range and the matching ids are collected in a Roaring bitmap,
// which is exactly what a backend limited to scalar range filters can do.
// Optional exact refinement then drops candidates outside the circle.
package store
