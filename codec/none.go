package codec

import "fmt"

// None is the identity compressor. Frames carry the payload verbatim.
//
// Useful when payloads are already dense (for example pre-compressed
// archives) or when decode latency matters more than size.
type None struct{}

// Compress returns data unchanged.
func (None) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress verifies the payload length and returns data unchanged.
// The result aliases data.
func (None) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, fmt.Errorf("%w: stored payload is %d bytes, expected %d", ErrCorrupt, len(data), size)
	}
	return data, nil
}

// Name returns "none".
func (None) Name() string { return "none" }
