package hexgrid

import (
	"fmt"
	"strconv"
)

// Resolution is a grid granularity level, 0 (coarsest) to 15 (finest).
type Resolution int

const (
	// MinResolution is the coarsest grid resolution.
	MinResolution Resolution = 0
	// MaxResolution is the finest grid resolution. Range projection always
	// expands to descendants at this resolution.
	MaxResolution Resolution = 15
)

// Valid reports whether r is within [MinResolution, MaxResolution].
func (r Resolution) Valid() bool {
	return r >= MinResolution && r <= MaxResolution
}

// Bit layout of a cell identifier (H3 index, mode 1):
//
//	63     reserved
//	59..62 mode
//	56..58 reserved
//	52..55 resolution
//	45..51 base cell
//	0..44  fifteen 3-bit child digits, resolution 1 most significant
//
// Digits of levels finer than the cell's resolution are all ones.
const (
	digitBits        = 3
	digitMask        = 1<<digitBits - 1
	unusedDigit      = digitMask
	baseCellOffset   = 45
	baseCellMask     = 0x7F
	resolutionOffset = 52
	resolutionMask   = 0xF
	modeOffset       = 59
	modeMask         = 0xF

	// CellMode is the mode of cell identifiers (as opposed to edges or vertices).
	CellMode = 1

	// NumBaseCells is the number of resolution 0 cells.
	NumBaseCells = 122
)

// Cell is an opaque hierarchical grid cell identifier produced by a Grid.
type Cell uint64

// Resolution returns the resolution encoded in the identifier.
func (c Cell) Resolution() Resolution {
	return Resolution((uint64(c) >> resolutionOffset) & resolutionMask)
}

// Mode returns the identifier mode.
func (c Cell) Mode() int {
	return int((uint64(c) >> modeOffset) & modeMask)
}

// BaseCell returns the resolution 0 ancestor number.
func (c Cell) BaseCell() int {
	return int((uint64(c) >> baseCellOffset) & baseCellMask)
}

// Digit returns the child digit selected at level (1..15).
// Levels finer than the cell's resolution read as 7.
func (c Cell) Digit(level Resolution) int {
	if level < 1 || level > MaxResolution {
		return unusedDigit
	}
	return int((uint64(c) >> digitOffset(level)) & digitMask)
}

// Compact returns the compact index of the cell.
func (c Cell) Compact() CompactIndex {
	return ToCompact(c)
}

// String returns the conventional lower-case hexadecimal form.
func (c Cell) String() string {
	return strconv.FormatUint(uint64(c), 16)
}

// ParseCell parses the hexadecimal form produced by String.
func ParseCell(s string) (Cell, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("hexgrid: parse cell %q: %w", s, err)
	}
	return Cell(v), nil
}

// NewCell assembles a cell identifier from a base cell and child digits,
// one digit per level below resolution 0. It does not check that the
// result names a real cell on any particular grid.
func NewCell(baseCell int, digits ...int) (Cell, error) {
	if baseCell < 0 || baseCell >= NumBaseCells {
		return 0, fmt.Errorf("%w: base cell %d", ErrInvalidCell, baseCell)
	}
	res := Resolution(len(digits))
	if !res.Valid() {
		return 0, fmt.Errorf("%w: %d digits", ErrInvalidResolution, len(digits))
	}

	v := uint64(CellMode)<<modeOffset |
		uint64(res)<<resolutionOffset |
		uint64(baseCell)<<baseCellOffset

	for level := Resolution(1); level <= MaxResolution; level++ {
		d := unusedDigit
		if level <= res {
			d = digits[level-1]
			if d < 0 || d >= unusedDigit {
				return 0, fmt.Errorf("%w: digit %d at level %d", ErrInvalidCell, d, level)
			}
		}
		v |= uint64(d) << digitOffset(level)
	}

	return Cell(v), nil
}

func digitOffset(level Resolution) uint {
	return uint(MaxResolution-level) * digitBits
}

// MarshalText implements encoding.TextMarshaler using the hexadecimal form.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cell) UnmarshalText(text []byte) error {
	v, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
