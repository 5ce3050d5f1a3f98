// Package hexrange provides approximate radius search over backends that
// can only filter on scalar ranges.
//
// Entities are indexed by the compact form of the hierarchical hexagonal
// cell they lie in. A radius query is translated into a small set of
// closed integer ranges over that compact index, such that "index falls in
// one of the ranges" holds for every entity within the circle (plus a thin
// margin following the hexagonal rings).
//
// # Quick Start
//
//	idx, err := hexrange.New(h3grid.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Write time: store the compact index next to the entity.
//	v, err := idx.IndexPoint(52.5200, 13.4050)
//
//	// Query time: build a predicate and hand it to the query layer.
//	pred, err := idx.BuildRadiusPredicate(ctx, 52.5163, 13.3777, 500)
//	where, args := pred.SQL("h3_compact")
//
// # Pipeline
//
// A radius query runs through these stages:
//
//   - SelectResolution: finest resolution whose edge length, times 3,
//     exceeds the radius.
//   - CellOf: center cell at that resolution.
//   - EnumerateRing: k = floor(radius / (cellRadius * 2.5)) + 1 rings.
//   - ProjectRange: each ring cell becomes the band of its resolution 15
//     descendants.
//   - Merge: overlapping and touching bands are united.
//
// The two factors are tunable with WithResolutionFactor and WithRingFactor.
//
// # Query Layers
//
//   - predicate.Predicate.SQL renders a parameterized WHERE clause.
//   - backend/dynamo renders a DynamoDB FilterExpression and scans with it.
//   - store is an in-memory reference store with exact refinement.
//
// # Concurrency
//
// Index is safe for concurrent use. All configuration is read-only after
// New; the optional range cache is internally synchronized.
package hexrange
