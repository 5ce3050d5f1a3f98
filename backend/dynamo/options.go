package dynamo

import (
	"github.com/hupe1980/hexrange"
	"golang.org/x/time/rate"
)

type options struct {
	pageSize       int32
	maxItems       int
	consistentRead bool
	projection     []string
	limiter        *rate.Limiter
	logger         *hexrange.Logger
}

func defaultOptions() options {
	return options{
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  hexrange.NoopLogger(),
	}
}

// Option configures a Searcher.
type Option func(*options)

// WithPageSize sets the number of items evaluated per scan request.
// DynamoDB applies the filter after reading a page, so pages may return
// fewer matches.
func WithPageSize(n int32) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithMaxItems stops paginating once n matches were collected.
// 0 reads the whole table (default).
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = n
	}
}

// WithConsistentRead requests strongly consistent reads.
func WithConsistentRead(enabled bool) Option {
	return func(o *options) {
		o.consistentRead = enabled
	}
}

// WithProjection limits the returned attributes.
func WithProjection(attrs ...string) Option {
	return func(o *options) {
		o.projection = append([]string(nil), attrs...)
	}
}

// WithRateLimit bounds scan requests to pagesPerSec with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(pagesPerSec float64, burst int) Option {
	return func(o *options) {
		if burst < 1 {
			burst = 1
		}
		limit := rate.Limit(pagesPerSec)
		if !(pagesPerSec > 0) {
			limit = rate.Inf
		}
		o.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *hexrange.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = hexrange.NoopLogger()
		}
		o.logger = l
	}
}
