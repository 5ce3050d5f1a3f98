package hexrange

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hexrange-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithField adds the predicate field name to the logger.
func (l *Logger) WithField(field string) *Logger {
	return &Logger{
		Logger: l.Logger.With("field", field),
	}
}

// LogQuery logs a radius query plan.
func (l *Logger) LogQuery(ctx context.Context, p Plan, radiusMeters float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "radius query failed",
			"lat", p.Lat,
			"lon", p.Lon,
			"radius_m", radiusMeters,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "radius query planned",
		"lat", p.Lat,
		"lon", p.Lon,
		"radius_m", radiusMeters,
		"resolution", int(p.Resolution),
		"center", p.Center.String(),
		"k", p.K,
		"cells", len(p.Cells),
		"ranges", len(p.Ranges),
		"elapsed", elapsed,
	)
}

// LogCacheHit logs a radius query served from the range cache.
func (l *Logger) LogCacheHit(ctx context.Context, lat, lon, radiusMeters float64, ranges int) {
	l.DebugContext(ctx, "radius query cache hit",
		"lat", lat,
		"lon", lon,
		"radius_m", radiusMeters,
		"ranges", ranges,
	)
}

// LogBatchIndex logs a batch compaction.
func (l *Logger) LogBatchIndex(ctx context.Context, count int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch index failed",
			"count", count,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "batch index completed",
		"count", count,
		"elapsed", elapsed,
	)
}
