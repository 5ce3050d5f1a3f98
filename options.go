package hexrange

import (
	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/predicate"
)

type options struct {
	edgeTable        hexgrid.EdgeTable
	resolutionFactor float64
	ringFactor       float64
	indexResolution  hexgrid.Resolution
	field            string
	logger           *Logger
	metricsCollector MetricsCollector
	cacheSize        int
	batchConcurrency int
}

func defaultOptions() options {
	return options{
		edgeTable:        hexgrid.DefaultEdgeTable(),
		resolutionFactor: hexgrid.DefaultResolutionFactor,
		ringFactor:       hexgrid.DefaultRingFactor,
		indexResolution:  hexgrid.MaxResolution,
		field:            predicate.DefaultField,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures an Index.
type Option func(*options)

// WithEdgeTable replaces the resolution to edge length table.
//
// The default table holds average H3 edge lengths. Grids with different
// cell sizes need a matching table.
func WithEdgeTable(t hexgrid.EdgeTable) Option {
	return func(o *options) {
		o.edgeTable = t
	}
}

// WithResolutionFactor sets the multiplier applied to edge lengths during
// resolution selection (default 3). Larger values pick finer resolutions
// and walk more rings.
func WithResolutionFactor(f float64) Option {
	return func(o *options) {
		o.resolutionFactor = f
	}
}

// WithRingFactor sets the multiplier applied to the cell radius when
// deriving the ring count k (default 2.5). Smaller values walk more rings.
func WithRingFactor(f float64) Option {
	return func(o *options) {
		o.ringFactor = f
	}
}

// WithIndexResolution sets the resolution at which entity locations are
// indexed by IndexPoint (default 15). Radius queries never plan finer than
// this resolution: a coarse entity's compact index is the top of its own
// cell's band and lies outside every band of a finer cell.
func WithIndexResolution(res hexgrid.Resolution) Option {
	return func(o *options) {
		o.indexResolution = res
	}
}

// WithField sets the field name carried by built predicates.
func WithField(field string) Option {
	return func(o *options) {
		if field == "" {
			field = predicate.DefaultField
		}
		o.field = field
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCacheSize enables an LRU cache of merged ranges holding up to n
// ranges in total. 0 disables caching (default).
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithBatchConcurrency bounds the goroutines used by IndexBatch.
// Values <= 0 use GOMAXPROCS.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		o.batchConcurrency = n
	}
}
