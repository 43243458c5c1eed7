package codec

import "errors"

var (
	// ErrBadMagic is returned when data does not begin with a volume frame.
	ErrBadMagic = errors.New("bad frame magic")

	// ErrVersion is returned when a frame was written by an unsupported
	// format version.
	ErrVersion = errors.New("unsupported frame version")

	// ErrUnknownCompressor is returned when a frame header names a
	// compressor this build does not provide.
	ErrUnknownCompressor = errors.New("unknown compressor")

	// ErrKindMismatch is returned when the stored element kind differs
	// from the one requested at decode time.
	ErrKindMismatch = errors.New("element kind mismatch")

	// ErrCorrupt is returned when a frame is structurally damaged:
	// truncated fields, impossible sizes, or a payload that does not
	// decompress to the declared length.
	ErrCorrupt = errors.New("corrupt frame")
)
