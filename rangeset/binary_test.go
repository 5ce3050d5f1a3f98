package rangeset

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Binary(t *testing.T) {
	s := Set{{3, 7}, {10, 10}, {1 << 40, 1<<40 + 4095}}

	data, err := s.MarshalBinary()
	require.NoError(t, err)

	var got Set
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, s, got)
}

func TestSet_BinaryEmpty(t *testing.T) {
	data, err := Set{}.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 3)

	var got Set
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Empty(t, got)
}

func TestSet_BinaryRejectsNonCanonical(t *testing.T) {
	_, err := Set{{0, 5}, {6, 9}}.MarshalBinary()
	assert.ErrorIs(t, err, ErrNotCanonical)
}

func TestSet_UnmarshalBinaryErrors(t *testing.T) {
	good, err := Set{{1, 2}, {10, 20}}.MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{binaryMagic}},
		{"bad magic", append([]byte{0x00}, good[1:]...)},
		{"bad version", append([]byte{binaryMagic, 9}, good[2:]...)},
		{"truncated", good[:len(good)-1]},
		{"trailing", append(append([]byte(nil), good...), 0)},
		{"touching", []byte{binaryMagic, binaryVersion, 2, 1, 5, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Set
			assert.Error(t, s.UnmarshalBinary(tt.data))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	var s Set
	for i := uint64(0); i < 2000; i++ {
		s = append(s, Range{Lower: i * 4096, Upper: i*4096 + 342})
	}

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(s, c)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestEncode_Compresses(t *testing.T) {
	var s Set
	for i := uint64(0); i < 2000; i++ {
		s = append(s, Range{Lower: i * 4096, Upper: i*4096 + 342})
	}

	raw, err := Encode(s, CompressionNone)
	require.NoError(t, err)
	zst, err := Encode(s, CompressionZSTD)
	require.NoError(t, err)

	assert.Less(t, len(zst), len(raw))
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	data, err := Encode(Set{{1, 2}}, CompressionNone)
	require.NoError(t, err)
	_, err = Decode(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = Encode(Set{{1, 2}}, Compression(9))
	assert.Error(t, err)
}

func TestDecode_OversizedHeader(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			body := []byte{0x28, 0xb5, 0x2f, 0xfd, 0, 0, 0, 0}
			data := make([]byte, blockHeaderSize+len(body))
			data[0] = byte(c)
			binary.LittleEndian.PutUint32(data[1:], 0xFFFFFFF0)
			binary.LittleEndian.PutUint32(data[5:], uint32(len(body)))
			copy(data[blockHeaderSize:], body)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)

			_, err := Decode(data)

			runtime.ReadMemStats(&after)

			require.ErrorIs(t, err, ErrInvalidEncoding)
			assert.Contains(t, err.Error(), "exceeds")
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
		})
	}
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCompression("snappy")
	assert.Error(t, err)
}
