package hexrange

import (
	"context"
	"runtime"
	"time"

	"github.com/hupe1980/hexrange/hexgrid"
	"golang.org/x/sync/errgroup"
)

// batchChunk is the number of points compacted per goroutine.
const batchChunk = 1024

// IndexBatch computes the compact index of every point at the configured
// index resolution. Work is spread over a bounded number of goroutines; the
// first error cancels the remaining chunks and is returned.
func (idx *Index) IndexBatch(ctx context.Context, points []Point) ([]hexgrid.CompactIndex, error) {
	start := time.Now()

	out, err := idx.indexBatch(ctx, points)

	elapsed := time.Since(start)
	idx.metrics.RecordBatchIndex(len(points), elapsed, err)
	idx.logger.LogBatchIndex(ctx, len(points), elapsed, err)

	return out, err
}

func (idx *Index) indexBatch(ctx context.Context, points []Point) ([]hexgrid.CompactIndex, error) {
	out := make([]hexgrid.CompactIndex, len(points))
	if len(points) == 0 {
		return out, nil
	}

	limit := idx.opts.batchConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	res := idx.opts.indexResolution
	for lo := 0; lo < len(points); lo += batchChunk {
		hi := min(lo+batchChunk, len(points))

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				c, err := idx.compactIndexOf(points[i].Lat, points[i].Lon, res)
				if err != nil {
					return err
				}
				out[i] = c
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
