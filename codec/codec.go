// Package codec centralizes volume serialization.
//
// Encoded volumes are self-describing: the frame records the compressor
// name, element kind and shape in its header, so any frame produced by
// Encode can be validated and decoded later without out-of-band
// knowledge. Codec selection is intentionally a breaking-change boundary;
// the header exists so mismatches fail loudly instead of corrupting data.
package codec

import "fmt"

// Compressor compresses and decompresses payload blocks.
// Implementations must be safe for concurrent use.
type Compressor interface {
	// Compress returns a compressed form of data.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. size is the exact decompressed
	// length; anything else is corruption. The result may alias data.
	Decompress(data []byte, size int) ([]byte, error)

	// Name returns the unique, stable name recorded in frame headers.
	Name() string
}

// ByName returns a built-in compressor by its stable name.
//
// Decoders use this to resolve the compressor recorded in a frame
// header.
func ByName(name string) (Compressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return Zstd{}, true
	default:
		return nil, false
	}
}

// Default is the compressor used when none is specified.
//
// Preprocessing pipelines re-encode volumes constantly, so the default
// favors speed over ratio. Frames always record the compressor name, so
// changing the default never breaks decoding of existing frames.
var Default Compressor = LZ4{}

// MustCompress is a helper for internal tests/benchmarks.
func MustCompress(c Compressor, data []byte) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Compress(data)
	if err != nil {
		panic(fmt.Errorf("compressor %s failed: %w", c.Name(), err))
	}
	return b
}
