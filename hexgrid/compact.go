package hexgrid

// CompactMask keeps the base cell and child digits of an identifier and
// drops the mode and resolution prefix.
const CompactMask uint64 = 0x000F_FFFF_FFFF_FFFF

// CompactIndex is the 52-bit ordered form of a cell identifier.
//
// Values compare as unsigned integers. The same transform must be applied to
// stored entity locations and to query ranges.
type CompactIndex uint64

// ToCompact drops the mode and resolution prefix of c, keeping the base
// cell and child digits.
// Masking is idempotent.
func ToCompact(c Cell) CompactIndex {
	return CompactIndex(uint64(c) & CompactMask)
}
