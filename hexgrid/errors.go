package hexgrid

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the parent of all configuration errors.
	ErrConfiguration = errors.New("hexgrid: configuration error")

	// ErrEmptyEdgeTable is returned when an edge table has no entries.
	ErrEmptyEdgeTable = fmt.Errorf("%w: empty edge table", ErrConfiguration)

	// ErrMalformedEdgeTable is returned when edge table entries are out of order or out of range.
	ErrMalformedEdgeTable = fmt.Errorf("%w: malformed edge table", ErrConfiguration)

	// ErrNoResolution is returned when no edge table entry resolves a radius.
	ErrNoResolution = fmt.Errorf("%w: no resolution for radius", ErrConfiguration)

	// ErrInvariantViolation indicates a logic defect in range projection.
	ErrInvariantViolation = errors.New("hexgrid: invariant violation")

	// ErrLookup is matched by every *LookupError.
	ErrLookup = errors.New("hexgrid: lookup failed")

	// ErrInvalidRadius is returned for negative, NaN or infinite radii.
	ErrInvalidRadius = errors.New("hexgrid: invalid radius")

	// ErrInvalidResolution is returned for resolutions outside 0..15.
	ErrInvalidResolution = errors.New("hexgrid: invalid resolution")

	// ErrInvalidCell is returned when a cell identifier cannot be built.
	ErrInvalidCell = errors.New("hexgrid: invalid cell")
)

// LookupError reports a failure of the underlying grid.
//
// The original underlying error can be accessed via errors.Unwrap.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("hexgrid: %s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is makes every LookupError match ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// WrapLookupError wraps a grid failure in a LookupError for op. Errors that
// already carry a LookupError are returned unchanged.
func WrapLookupError(op string, err error) error {
	var le *LookupError
	if errors.As(err, &le) {
		return err
	}
	return &LookupError{Op: op, Err: err}
}
