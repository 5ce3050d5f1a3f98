package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/hexrange"
	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/predicate"
)

// ErrNilIndex is returned by New without an Index.
var ErrNilIndex = errors.New("store: nil index")

// Entity is a point-located entity.
type Entity struct {
	ID  uint64  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type location struct {
	lat, lon float64
	value    uint64
}

// Store is an in-memory entity store that answers radius queries through
// compact index range predicates only.
//
// Writes append to an unsorted column; the first query after a write seals
// it (drops superseded entries and sorts). Store is safe for concurrent use.
type Store struct {
	idx    *hexrange.Index
	opts   options
	logger *hexrange.Logger

	mu     sync.RWMutex
	col    column
	points map[uint64]location
}

// New creates a Store that indexes entities with idx.
func New(idx *hexrange.Index, optFns ...Option) (*Store, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Store{
		idx:    idx,
		opts:   opts,
		logger: opts.logger,
		col:    newColumn(opts.initialCapacity),
		points: make(map[uint64]location, opts.initialCapacity),
	}, nil
}

// Put inserts or updates an entity.
func (s *Store) Put(ctx context.Context, id uint64, lat, lon float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v, err := s.idx.IndexPoint(lat, lon)
	if err != nil {
		return fmt.Errorf("store: put %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(id, location{lat: lat, lon: lon, value: uint64(v)})
	return nil
}

// PutBatch inserts or updates many entities. Compact indexes are computed
// concurrently; on error nothing is written.
func (s *Store) PutBatch(ctx context.Context, entities []Entity) error {
	points := make([]hexrange.Point, len(entities))
	for i, e := range entities {
		points[i] = hexrange.Point{Lat: e.Lat, Lon: e.Lon}
	}

	values, err := s.idx.IndexBatch(ctx, points)
	if err != nil {
		return fmt.Errorf("store: put batch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range entities {
		s.put(e.ID, location{lat: e.Lat, lon: e.Lon, value: uint64(values[i])})
	}
	return nil
}

// put requires the write lock.
func (s *Store) put(id uint64, loc location) {
	if old, ok := s.points[id]; ok {
		s.points[id] = loc
		if old.value == loc.value {
			return
		}
		s.col.stale++
	} else {
		s.points[id] = loc
	}
	s.col.append(loc.value, id)
}

// Delete removes an entity. It reports whether the entity existed.
func (s *Store) Delete(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.points[id]; !ok {
		return false
	}
	delete(s.points, id)
	s.col.stale++
	return true
}

// Get returns the entity stored under id.
func (s *Store) Get(id uint64) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.points[id]
	if !ok {
		return Entity{}, false
	}
	return Entity{ID: id, Lat: loc.lat, Lon: loc.lon}, true
}

// Len returns the number of entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Seal compacts and sorts the column. Queries seal on demand; calling Seal
// after a bulk load moves that cost out of the first query.
func (s *Store) Seal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seal()
}

// seal requires the write lock.
func (s *Store) seal() {
	if s.col.sorted && s.col.stale == 0 {
		return
	}

	start := time.Now()
	stale := s.col.stale

	seen := make(map[uint64]struct{}, len(s.points))
	s.col.seal(func(value, id uint64) bool {
		loc, ok := s.points[id]
		if !ok || loc.value != value {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		return true
	})

	s.logger.Debug("store sealed",
		"entries", len(s.col.values),
		"dropped", stale,
		"elapsed", time.Since(start),
	)
}

// rlockSealed acquires the read lock on a sealed column and returns the
// matching unlock.
func (s *Store) rlockSealed() func() {
	for {
		s.mu.RLock()
		if s.col.sorted && s.col.stale == 0 {
			return s.mu.RUnlock
		}
		s.mu.RUnlock()

		s.mu.Lock()
		s.seal()
		s.mu.Unlock()
	}
}

// Candidates returns the ids whose compact index satisfies pred. This is
// the only filter a range-capable backend can apply.
func (s *Store) Candidates(ctx context.Context, pred predicate.Predicate) (*roaring64.Bitmap, error) {
	dst := roaring64.NewBitmap()

	unlock := s.rlockSealed()
	defer unlock()

	for r := range pred.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.col.queryRange(r, dst)
	}

	return dst, nil
}

// Search returns the ids of entities within radiusMeters of the coordinate,
// in ascending order. Without exact refinement the result is the candidate
// superset following the hexagonal ring.
func (s *Store) Search(ctx context.Context, lat, lon, radiusMeters float64) ([]uint64, error) {
	pred, err := s.idx.BuildRadiusPredicate(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Candidates(ctx, pred)
	if err != nil {
		return nil, err
	}

	if s.opts.exactRefinement {
		s.refine(candidates, lat, lon, radiusMeters)
	}

	s.logger.DebugContext(ctx, "store search",
		"ranges", pred.Len(),
		"matches", candidates.GetCardinality(),
		"refined", s.opts.exactRefinement,
	)

	return candidates.ToArray(), nil
}

// refine removes candidates farther than radiusMeters.
func (s *Store) refine(candidates *roaring64.Bitmap, lat, lon, radiusMeters float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	far := roaring64.NewBitmap()
	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		loc, ok := s.points[id]
		if !ok || hexgrid.GreatCircleMeters(lat, lon, loc.lat, loc.lon) > radiusMeters {
			far.Add(id)
		}
	}
	candidates.AndNot(far)
}

// Nearest returns up to n entities within radiusMeters ordered by distance.
func (s *Store) Nearest(ctx context.Context, lat, lon, radiusMeters float64, n int) ([]Entity, error) {
	if n <= 0 {
		return nil, nil
	}

	ids, err := s.Search(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	type hit struct {
		e    Entity
		dist float64
	}

	s.mu.RLock()
	hits := make([]hit, 0, len(ids))
	for _, id := range ids {
		loc, ok := s.points[id]
		if !ok {
			continue
		}
		d := hexgrid.GreatCircleMeters(lat, lon, loc.lat, loc.lon)
		if d > radiusMeters || math.IsNaN(d) {
			continue
		}
		hits = append(hits, hit{e: Entity{ID: id, Lat: loc.lat, Lon: loc.lon}, dist: d})
	}
	s.mu.RUnlock()

	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.e.ID, b.e.ID)
	})

	out := make([]Entity, 0, min(n, len(hits)))
	for _, h := range hits[:min(n, len(hits))] {
		out = append(out, h.e)
	}
	return out, nil
}
