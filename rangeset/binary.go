package rangeset

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	binaryMagic   byte = 0x52 // 'R'
	binaryVersion byte = 1
)

var (
	// ErrInvalidEncoding is returned when decoding malformed bytes.
	ErrInvalidEncoding = errors.New("rangeset: invalid encoding")
)

// MarshalBinary encodes the set as delta-encoded uvarints:
//
//	[magic][version][count uvarint]{[lower - prevUpper uvarint][width uvarint]}...
//
// The first lower bound is stored verbatim. The set must be canonical.
func (s Set) MarshalBinary() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 2+binary.MaxVarintLen64*(1+2*len(s)))
	buf = append(buf, binaryMagic, binaryVersion)
	buf = binary.AppendUvarint(buf, uint64(len(s)))

	var prev uint64
	for i, r := range s {
		if i == 0 {
			buf = binary.AppendUvarint(buf, r.Lower)
		} else {
			buf = binary.AppendUvarint(buf, r.Lower-prev)
		}
		buf = binary.AppendUvarint(buf, r.Width())
		prev = r.Upper
	}

	return buf, nil
}

// UnmarshalBinary decodes bytes written by MarshalBinary and validates the
// result.
func (s *Set) UnmarshalBinary(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidEncoding, len(data))
	}
	if data[0] != binaryMagic {
		return fmt.Errorf("%w: bad magic %#x", ErrInvalidEncoding, data[0])
	}
	if data[1] != binaryVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, data[1])
	}
	data = data[2:]

	count, n := binary.Uvarint(data)
	if n <= 0 {
		return fmt.Errorf("%w: bad count", ErrInvalidEncoding)
	}
	data = data[n:]

	// Each range needs at least two bytes.
	if count > uint64(len(data)/2) {
		return fmt.Errorf("%w: count %d exceeds payload", ErrInvalidEncoding, count)
	}

	out := make(Set, 0, count)
	var prev uint64
	for i := uint64(0); i < count; i++ {
		delta, n := binary.Uvarint(data)
		if n <= 0 {
			return fmt.Errorf("%w: range %d lower bound", ErrInvalidEncoding, i)
		}
		data = data[n:]

		width, n := binary.Uvarint(data)
		if n <= 0 {
			return fmt.Errorf("%w: range %d width", ErrInvalidEncoding, i)
		}
		data = data[n:]

		lower := delta
		if i > 0 {
			lower = prev + delta
			if lower < prev {
				return fmt.Errorf("%w: range %d overflows", ErrInvalidEncoding, i)
			}
		}
		upper := lower + width
		if upper < lower {
			return fmt.Errorf("%w: range %d overflows", ErrInvalidEncoding, i)
		}

		out = append(out, Range{Lower: lower, Upper: upper})
		prev = upper
	}

	if len(data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidEncoding, len(data))
	}
	if err := out.Validate(); err != nil {
		return err
	}

	*s = out
	return nil
}
