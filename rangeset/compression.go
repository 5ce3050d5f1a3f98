package rangeset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression used by Encode.
type Compression uint8

const (
	// CompressionNone stores the encoded set as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio for large sets).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses the name returned by Compression.String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("rangeset: unknown compression %q", name)
	}
}

// Block layout: [type uint8][uncompressed uint32][compressed uint32][data]
// A compressed size of 0 means the payload is stored uncompressed.
const blockHeaderSize = 9

// MaxDecodedSize bounds the uncompressed payload Decode accepts. A set of
// one million ranges encodes to at most 20 MiB.
const MaxDecodedSize = 64 << 20

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	return dec
}

// Encode marshals s and compresses the payload with c. If compression does
// not shrink the payload by at least 10%, it is stored uncompressed.
func Encode(s Set, c Compression) ([]byte, error) {
	raw, err := s.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxDecodedSize {
		return nil, fmt.Errorf("rangeset: encoded set of %d bytes exceeds %d", len(raw), MaxDecodedSize)
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(raw)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("rangeset: unknown compression %d", c)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(raw))*0.9 {
		compressed = nil
	}

	payload := raw
	if compressed != nil {
		payload = compressed
	}

	out := make([]byte, blockHeaderSize+len(payload))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], payload)
	return out, nil
}

// Decode reverses Encode.
func Decode(data []byte) (Set, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrInvalidEncoding)
	}

	c := Compression(data[0])
	rawSize := binary.LittleEndian.Uint32(data[1:])
	compressedSize := binary.LittleEndian.Uint32(data[5:])
	body := data[blockHeaderSize:]

	if rawSize > MaxDecodedSize {
		return nil, fmt.Errorf("%w: block of %d bytes exceeds %d", ErrInvalidEncoding, rawSize, MaxDecodedSize)
	}

	var raw []byte
	if compressedSize == 0 {
		if uint32(len(body)) != rawSize {
			return nil, fmt.Errorf("%w: block size mismatch", ErrInvalidEncoding)
		}
		raw = body
	} else {
		if uint32(len(body)) != compressedSize {
			return nil, fmt.Errorf("%w: compressed block size mismatch", ErrInvalidEncoding)
		}

		var err error
		switch c {
		case CompressionLZ4:
			raw, err = decompressLZ4(body, rawSize)
		case CompressionZSTD:
			dec := getZstdDecoder()
			raw, err = dec.DecodeAll(body, make([]byte, 0, rawSize))
			zstdDecoderPool.Put(dec)
		default:
			return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidEncoding, c)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
		if uint32(len(raw)) != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidEncoding)
		}
	}

	var s Set
	if err := s.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return s, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

func decompressLZ4(data []byte, size uint32) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if uint32(n) != size {
		return nil, errors.New("lz4: short block")
	}
	return dst, nil
}
