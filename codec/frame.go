package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/hupe1980/voxgo/internal/conv"
	"github.com/hupe1980/voxgo/volume"
)

// Volume frame layout:
//
//	[magic:4]                                  "VXG0"
//	[version:uvarint]
//	[compressor name length:uvarint][name]
//	[kind:1]
//	[rank:uvarint][extent:uvarint x rank]
//	[payload size:uvarint]                     uncompressed bytes
//	[payload]                                  compressed with the named compressor
var (
	frameMagic   = [4]byte{'V', 'X', 'G', '0'}
	frameVersion = uint64(1)
)

// maxPayload caps the uncompressed payload of a single frame at 4 GiB.
// Sizes travel as uvarints, so without the cap a forged header could
// demand an absurd allocation before decompression ever fails.
const maxPayload = math.MaxUint32

// Kind identifies the element type stored in a frame.
type Kind uint8

const (
	// KindInvalid is the zero Kind and never appears in valid frames.
	KindInvalid Kind = iota
	// KindInt8 is a signed 8-bit element.
	KindInt8
	// KindInt16 is a signed 16-bit element.
	KindInt16
	// KindInt32 is a signed 32-bit element.
	KindInt32
	// KindInt64 is a signed 64-bit element.
	KindInt64
	// KindUint8 is an unsigned 8-bit element.
	KindUint8
	// KindUint16 is an unsigned 16-bit element.
	KindUint16
	// KindUint32 is an unsigned 32-bit element.
	KindUint32
	// KindUint64 is an unsigned 64-bit element.
	KindUint64
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	default:
		return "invalid"
	}
}

// Size returns the element width in bytes, or 0 for invalid kinds.
func (k Kind) Size() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32:
		return 4
	case KindInt64, KindUint64:
		return 8
	default:
		return 0
	}
}

// kindOf reports the Kind of a label instantiation. The signedness probe
// works for named types, where a switch on any would not.
func kindOf[T volume.Label]() Kind {
	var z T
	signed := z-1 < 0

	switch unsafe.Sizeof(z) {
	case 1:
		if signed {
			return KindInt8
		}
		return KindUint8
	case 2:
		if signed {
			return KindInt16
		}
		return KindUint16
	case 4:
		if signed {
			return KindInt32
		}
		return KindUint32
	default:
		if signed {
			return KindInt64
		}
		return KindUint64
	}
}

// Encode serializes v into a self-describing frame compressed with c.
// A nil compressor means Default.
func Encode[T volume.Label](v *volume.Volume[T], c Compressor) ([]byte, error) {
	if v == nil {
		return nil, errors.New("nil volume")
	}
	if c == nil {
		c = Default
	}

	kind := kindOf[T]()
	shape := v.Shape()
	data := v.Data()

	rawSize := len(data) * kind.Size()
	if uint64(rawSize) > maxPayload {
		return nil, fmt.Errorf("volume needs %d payload bytes, frame limit is %d", rawSize, uint64(maxPayload))
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), rawSize) //nolint:gosec // unsafe is required for performance

	payload, err := c.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}

	name := c.Name()
	buf := make([]byte, 0, len(frameMagic)+4+len(name)+2+(len(shape)+1)*binary.MaxVarintLen64+len(payload))
	buf = append(buf, frameMagic[:]...)
	buf = binary.AppendUvarint(buf, frameVersion)
	buf = binary.AppendUvarint(buf, uint64(len(name)))
	buf = append(buf, name...)
	buf = append(buf, byte(kind))
	buf = binary.AppendUvarint(buf, uint64(len(shape)))
	for _, d := range shape {
		buf = binary.AppendUvarint(buf, uint64(d))
	}
	buf = binary.AppendUvarint(buf, uint64(rawSize))
	buf = append(buf, payload...)
	return buf, nil
}

// MustEncode is like Encode but panics on error.
func MustEncode[T volume.Label](v *volume.Volume[T], c Compressor) []byte {
	b, err := Encode(v, c)
	if err != nil {
		panic(fmt.Errorf("failed to encode volume: %w", err))
	}
	return b
}

// frameHeader is a fully validated frame header plus the still-compressed
// payload bytes.
type frameHeader struct {
	comp    Compressor
	kind    Kind
	shape   []int
	elems   int
	rawSize int
	payload []byte
}

// parseFrame validates everything about a frame except the element kind
// against a concrete label type: magic, version, compressor, kind
// validity, and that the declared shape agrees with the declared payload
// size. The payload is not decompressed.
func parseFrame(frame []byte) (*frameHeader, error) {
	if len(frame) < len(frameMagic) || [4]byte(frame[:4]) != frameMagic {
		return nil, ErrBadMagic
	}
	rest := frame[len(frameMagic):]

	version, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated version", ErrCorrupt)
	}
	rest = rest[n:]
	if version != frameVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}

	nameLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated compressor name length", ErrCorrupt)
	}
	rest = rest[n:]
	if nameLen > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: short buffer for compressor name", ErrCorrupt)
	}
	name := string(rest[:nameLen])
	rest = rest[nameLen:]

	comp, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompressor, name)
	}

	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: missing element kind", ErrCorrupt)
	}
	kind := Kind(rest[0])
	rest = rest[1:]

	esz := kind.Size()
	if esz == 0 {
		return nil, fmt.Errorf("%w: invalid element kind %d", ErrCorrupt, uint8(kind))
	}

	rank, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated rank", ErrCorrupt)
	}
	rest = rest[n:]
	// Every extent takes at least one byte.
	if rank == 0 || rank > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: rank %d", ErrCorrupt, rank)
	}

	shape := make([]int, rank)
	for i := range shape {
		d, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, fmt.Errorf("%w: truncated shape", ErrCorrupt)
		}
		rest = rest[n:]

		dim, err := conv.Uint64ToInt(d)
		if err != nil {
			return nil, fmt.Errorf("%w: extent %d overflows", ErrCorrupt, d)
		}
		shape[i] = dim
	}

	size64, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated payload size", ErrCorrupt)
	}
	rest = rest[n:]

	if size64 > maxPayload {
		return nil, fmt.Errorf("%w: payload size %d exceeds frame limit", ErrCorrupt, size64)
	}
	rawSize, err := conv.Uint64ToInt(size64)
	if err != nil {
		return nil, fmt.Errorf("%w: payload size %d overflows", ErrCorrupt, size64)
	}

	elems, err := volume.Elems(shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: shape %v: %w", ErrCorrupt, shape, err)
	}
	if elems > math.MaxInt/esz {
		return nil, fmt.Errorf("%w: shape %v overflows payload size", ErrCorrupt, shape)
	}
	if rawSize != elems*esz {
		return nil, fmt.Errorf("%w: shape %v needs %d payload bytes, header declares %d", ErrCorrupt, shape, elems*esz, rawSize)
	}

	return &frameHeader{
		comp:    comp,
		kind:    kind,
		shape:   shape,
		elems:   elems,
		rawSize: rawSize,
		payload: rest,
	}, nil
}

// Decode parses a frame produced by Encode into a volume with element
// type T.
//
// The header is validated in full before the payload is touched; the
// decoded volume shares no memory with frame. Fails with ErrKindMismatch
// when the frame holds a different element type than T.
func Decode[T volume.Label](frame []byte) (*volume.Volume[T], error) {
	h, err := parseFrame(frame)
	if err != nil {
		return nil, err
	}
	if want := kindOf[T](); h.kind != want {
		return nil, fmt.Errorf("%w: frame holds %s, requested %s", ErrKindMismatch, h.kind, want)
	}
	return decodeFrame[T](h)
}

func decodeFrame[T volume.Label](h *frameHeader) (*volume.Volume[T], error) {
	raw, err := h.comp.Decompress(h.payload, h.rawSize)
	if err != nil {
		return nil, err
	}
	if len(raw) != h.rawSize {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, expected %d", ErrCorrupt, len(raw), h.rawSize)
	}

	data := make([]T, h.elems)
	view := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), h.rawSize) //nolint:gosec // unsafe is required for performance
	copy(view, raw)

	return volume.FromData(data, h.shape...)
}

// decodeAny decodes a frame into the label type recorded in its header.
func decodeAny(frame []byte) (any, error) {
	h, err := parseFrame(frame)
	if err != nil {
		return nil, err
	}

	switch h.kind {
	case KindInt8:
		return decodeFrame[int8](h)
	case KindInt16:
		return decodeFrame[int16](h)
	case KindInt32:
		return decodeFrame[int32](h)
	case KindInt64:
		return decodeFrame[int64](h)
	case KindUint8:
		return decodeFrame[uint8](h)
	case KindUint16:
		return decodeFrame[uint16](h)
	case KindUint32:
		return decodeFrame[uint32](h)
	default:
		return decodeFrame[uint64](h)
	}
}

// MustDecode is like Decode but panics on error.
func MustDecode[T volume.Label](frame []byte) *volume.Volume[T] {
	v, err := Decode[T](frame)
	if err != nil {
		panic(fmt.Errorf("failed to decode volume: %w", err))
	}
	return v
}
