package rangeset

import (
	"fmt"
	"math"
)

// Range is a closed interval [Lower, Upper] of compact index values.
type Range struct {
	Lower uint64 `json:"lower"`
	Upper uint64 `json:"upper"`
}

// Point returns the singleton range [v, v].
func Point(v uint64) Range {
	return Range{Lower: v, Upper: v}
}

// Valid reports whether Lower <= Upper.
func (r Range) Valid() bool {
	return r.Lower <= r.Upper
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v uint64) bool {
	return v >= r.Lower && v <= r.Upper
}

// Width returns Upper - Lower, i.e. the count of values minus one.
func (r Range) Width() uint64 {
	return r.Upper - r.Lower
}

// Touches reports whether next overlaps r or starts right after it.
// next.Lower must not be below r.Lower.
func (r Range) Touches(next Range) bool {
	if r.Upper == math.MaxUint64 {
		return true
	}
	return next.Lower <= r.Upper+1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Lower, r.Upper)
}
