package hexrange

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hexrange/hexgrid"
)

var (
	// ErrConfiguration is returned for unusable edge tables, factors or grids.
	ErrConfiguration = errors.New("configuration error")

	// ErrLookup is returned when the grid rejects a coordinate or cell.
	// Coordinate validity is the caller's responsibility; nothing is retried.
	ErrLookup = errors.New("grid lookup failed")

	// ErrInvariant indicates a logic defect, e.g. a range that would wrap
	// below zero.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidRadius is returned for negative, NaN or infinite radii.
	ErrInvalidRadius = errors.New("invalid radius")
)

// ErrInvalidResolution indicates a resolution outside 0..15.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidResolution struct {
	Resolution hexgrid.Resolution
	cause      error
}

func (e *ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid resolution: %d", e.Resolution)
}

func (e *ErrInvalidResolution) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, hexgrid.ErrConfiguration):
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	case errors.Is(err, hexgrid.ErrLookup):
		return fmt.Errorf("%w: %w", ErrLookup, err)
	case errors.Is(err, hexgrid.ErrInvariantViolation):
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	case errors.Is(err, hexgrid.ErrInvalidRadius):
		return fmt.Errorf("%w: %w", ErrInvalidRadius, err)
	}

	return err
}
