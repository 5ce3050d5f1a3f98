package store

import "github.com/hupe1980/hexrange"

type options struct {
	exactRefinement bool
	initialCapacity int
	logger          *hexrange.Logger
}

func defaultOptions() options {
	return options{
		logger: hexrange.NoopLogger(),
	}
}

// Option configures a Store.
type Option func(*options)

// WithExactRefinement drops candidates outside the circle by great-circle
// distance. Without it Search returns the ring superset, as a range-only
// backend would.
func WithExactRefinement(enabled bool) Option {
	return func(o *options) {
		o.exactRefinement = enabled
	}
}

// WithInitialCapacity preallocates space for n entities.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.initialCapacity = n
		}
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
