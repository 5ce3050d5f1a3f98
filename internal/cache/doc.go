// Package cache provides an LRU cache for merged range sets.
//
// Radius queries are pure functions of (lat, lon, radius) for a fixed grid
// and edge table, so their merged ranges can be reused across requests.
// Capacity is counted in ranges, not entries, so a few very large rings
// cannot pin the cache.
package cache
