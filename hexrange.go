package hexrange

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/internal/cache"
	"github.com/hupe1980/hexrange/predicate"
	"github.com/hupe1980/hexrange/rangeset"
)

// Point is a coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Plan describes how a radius query was translated into ranges.
type Plan struct {
	Lat        float64            `json:"lat"`
	Lon        float64            `json:"lon"`
	Radius     float64            `json:"radius_m"`
	Resolution hexgrid.Resolution `json:"resolution"`
	Center     hexgrid.Cell       `json:"center"`
	K          int                `json:"k"`
	Cells      []hexgrid.Cell     `json:"cells"`
	Ranges     rangeset.Set       `json:"ranges"`
}

// Index translates radius queries into compact index ranges.
//
// An Index holds only read-only configuration (and an optional internally
// synchronized cache); it is safe for concurrent use.
type Index struct {
	grid    hexgrid.Grid
	opts    options
	logger  *Logger
	metrics MetricsCollector
	cache   *cache.LRU
}

// New creates an Index over grid.
func New(grid hexgrid.Grid, optFns ...Option) (*Index, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrConfiguration)
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.edgeTable.Len() == 0 {
		return nil, translateError(hexgrid.ErrEmptyEdgeTable)
	}
	if !validFactor(opts.resolutionFactor) {
		return nil, fmt.Errorf("%w: resolution factor %v", ErrConfiguration, opts.resolutionFactor)
	}
	if !validFactor(opts.ringFactor) {
		return nil, fmt.Errorf("%w: ring factor %v", ErrConfiguration, opts.ringFactor)
	}
	if !opts.indexResolution.Valid() {
		return nil, &ErrInvalidResolution{Resolution: opts.indexResolution, cause: hexgrid.ErrInvalidResolution}
	}

	idx := &Index{
		grid:    grid,
		opts:    opts,
		logger:  opts.logger.WithField(opts.field),
		metrics: opts.metricsCollector,
	}
	if opts.cacheSize > 0 {
		idx.cache = cache.NewLRU(opts.cacheSize)
	}

	return idx, nil
}

// Field returns the field name carried by built predicates.
func (idx *Index) Field() string {
	return idx.opts.field
}

// IndexResolution returns the resolution used by IndexPoint and IndexBatch.
func (idx *Index) IndexResolution() hexgrid.Resolution {
	return idx.opts.indexResolution
}

// EdgeTable returns the configured edge table.
func (idx *Index) EdgeTable() hexgrid.EdgeTable {
	return idx.opts.edgeTable
}

// SelectResolution returns the resolution the edge table selects for a
// radius. Queries are planned at this resolution or at the index
// resolution, whichever is coarser.
func (idx *Index) SelectResolution(radiusMeters float64) (hexgrid.Resolution, error) {
	res, err := idx.opts.edgeTable.Select(radiusMeters, idx.opts.resolutionFactor)
	return res, translateError(err)
}

// CompactIndexOf returns the compact index of the cell containing the
// coordinate at res. Use it at write time to index an entity.
func (idx *Index) CompactIndexOf(lat, lon float64, res hexgrid.Resolution) (hexgrid.CompactIndex, error) {
	start := time.Now()

	c, err := idx.compactIndexOf(lat, lon, res)

	idx.metrics.RecordIndex(time.Since(start), err)
	return c, err
}

// IndexPoint is CompactIndexOf at the configured index resolution.
func (idx *Index) IndexPoint(lat, lon float64) (hexgrid.CompactIndex, error) {
	return idx.CompactIndexOf(lat, lon, idx.opts.indexResolution)
}

func (idx *Index) compactIndexOf(lat, lon float64, res hexgrid.Resolution) (hexgrid.CompactIndex, error) {
	if !res.Valid() {
		return 0, &ErrInvalidResolution{Resolution: res, cause: hexgrid.ErrInvalidResolution}
	}

	cell, err := idx.grid.CellOf(lat, lon, res)
	if err != nil {
		return 0, translateError(hexgrid.WrapLookupError("cell of", err))
	}

	return hexgrid.ToCompact(cell), nil
}

// Plan runs the full translation of a radius query: resolution selection,
// center cell lookup, k-ring enumeration, range projection and merge.
// It bypasses the range cache.
func (idx *Index) Plan(ctx context.Context, lat, lon, radiusMeters float64) (Plan, error) {
	start := time.Now()

	p, err := idx.plan(lat, lon, radiusMeters)

	elapsed := time.Since(start)
	idx.metrics.RecordQuery(len(p.Cells), len(p.Ranges), elapsed, err)
	idx.logger.LogQuery(ctx, p, radiusMeters, elapsed, err)

	return p, err
}

func (idx *Index) plan(lat, lon, radiusMeters float64) (Plan, error) {
	p := Plan{Lat: lat, Lon: lon, Radius: radiusMeters}

	res, err := idx.SelectResolution(radiusMeters)
	if err != nil {
		return p, err
	}
	// Entities indexed coarser than the query would sit above every finer
	// band, so the ring is walked at the index resolution instead.
	res = min(res, idx.opts.indexResolution)
	p.Resolution = res

	center, err := idx.grid.CellOf(lat, lon, res)
	if err != nil {
		return p, translateError(hexgrid.WrapLookupError("cell of", err))
	}
	p.Center = center

	ring, err := hexgrid.EnumerateRing(idx.grid, center, radiusMeters, idx.opts.ringFactor)
	if err != nil {
		return p, translateError(err)
	}
	p.K = ring.K
	p.Cells = ring.Cells

	ranges, err := hexgrid.ProjectRanges(ring.Cells)
	if err != nil {
		return p, translateError(err)
	}
	p.Ranges = rangeset.Merge(ranges)

	return p, nil
}

// RadiusRanges returns the merged compact index ranges covering the circle
// (a superset of it, following the hexagonal ring).
func (idx *Index) RadiusRanges(ctx context.Context, lat, lon, radiusMeters float64) (rangeset.Set, error) {
	if idx.cache == nil {
		p, err := idx.Plan(ctx, lat, lon, radiusMeters)
		return p.Ranges, err
	}

	key := cache.NewKey(lat, lon, radiusMeters)
	if s, ok := idx.cache.Get(key); ok {
		idx.metrics.RecordCacheHit()
		idx.logger.LogCacheHit(ctx, lat, lon, radiusMeters, len(s))
		return s.Clone(), nil
	}

	p, err := idx.Plan(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}
	idx.cache.Set(key, p.Ranges.Clone())

	return p.Ranges, nil
}

// BuildRadiusPredicate returns the predicate matching every compact index
// within the radius query's ranges.
func (idx *Index) BuildRadiusPredicate(ctx context.Context, lat, lon, radiusMeters float64) (predicate.Predicate, error) {
	s, err := idx.RadiusRanges(ctx, lat, lon, radiusMeters)
	if err != nil {
		return predicate.Predicate{}, err
	}
	return predicate.Build(idx.opts.field, s.All()), nil
}

// CacheStats returns range cache hits and misses; zeros without a cache.
func (idx *Index) CacheStats() (hits, misses int64) {
	if idx.cache == nil {
		return 0, 0
	}
	return idx.cache.Stats()
}

func validFactor(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
