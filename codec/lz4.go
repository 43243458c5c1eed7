package codec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 payloads carry a one-byte marker so incompressible data can be
// stored raw instead of growing past its original size.
const (
	lz4Raw   = 0x00
	lz4Block = 0x01
)

// LZ4 compresses payloads as single LZ4 blocks. Fast with a moderate
// ratio, a good fit for hot caches and in-flight shuffle buffers.
type LZ4 struct{}

// Compress compresses data as one LZ4 block. Incompressible payloads
// are stored raw behind the marker byte.
func (LZ4) Compress(data []byte) ([]byte, error) {
	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4Block

	n, err := lz4.CompressBlock(data, dst[1:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compress lz4 block: %w", err)
	}
	if n == 0 || n >= len(data) {
		// Incompressible
		raw := make([]byte, 1+len(data))
		raw[0] = lz4Raw
		copy(raw[1:], data)
		return raw, nil
	}
	return dst[:1+n], nil
}

// Decompress reverses Compress.
func (LZ4) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty lz4 payload", ErrCorrupt)
	}
	switch data[0] {
	case lz4Raw:
		if len(data)-1 != size {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, expected %d", ErrCorrupt, len(data)-1, size)
		}
		return data[1:], nil
	case lz4Block:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data[1:], out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if n != size {
			return nil, fmt.Errorf("%w: lz4 block decompressed to %d bytes, expected %d", ErrCorrupt, n, size)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown lz4 payload marker 0x%02x", ErrCorrupt, data[0])
	}
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }
