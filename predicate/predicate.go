package predicate

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/hexrange/rangeset"
)

// DefaultField is the field name used when none is given.
const DefaultField = "h3"

// Predicate is a disjunction of closed-range membership tests over one
// numeric field:
//
//	field BETWEEN r0.Lower AND r0.Upper OR field BETWEEN r1.Lower AND r1.Upper ...
//
// It is plain data so each query layer can translate it into its native
// filter. A Predicate without ranges matches nothing.
type Predicate struct {
	field  string
	ranges rangeset.Set
}

// Build merges ranges into a canonical disjunction over field.
func Build(field string, ranges iter.Seq[rangeset.Range]) Predicate {
	if field == "" {
		field = DefaultField
	}
	return Predicate{
		field:  field,
		ranges: rangeset.Collect(ranges),
	}
}

// FromSet wraps an already merged set. The set is validated and copied.
func FromSet(field string, s rangeset.Set) (Predicate, error) {
	if err := s.Validate(); err != nil {
		return Predicate{}, err
	}
	if field == "" {
		field = DefaultField
	}
	return Predicate{field: field, ranges: s.Clone()}, nil
}

// Never returns the constant-false predicate.
func Never(field string) Predicate {
	return Build(field, func(func(rangeset.Range) bool) {})
}

// Field returns the name of the filtered field.
func (p Predicate) Field() string {
	if p.field == "" {
		return DefaultField
	}
	return p.field
}

// Ranges returns a copy of the ordered ranges.
func (p Predicate) Ranges() rangeset.Set {
	return p.ranges.Clone()
}

// All iterates the ordered ranges without copying.
func (p Predicate) All() iter.Seq[rangeset.Range] {
	return p.ranges.All()
}

// Len returns the number of range clauses.
func (p Predicate) Len() int {
	return len(p.ranges)
}

// IsEmpty reports whether the predicate matches nothing.
func (p Predicate) IsEmpty() bool {
	return len(p.ranges) == 0
}

// Matches reports whether v lies in any of the ranges.
func (p Predicate) Matches(v uint64) bool {
	return p.ranges.Contains(v)
}

func (p Predicate) String() string {
	if p.IsEmpty() {
		return "false"
	}
	var sb strings.Builder
	for i, r := range p.ranges {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		fmt.Fprintf(&sb, "%s IN %s", p.Field(), r)
	}
	return sb.String()
}
