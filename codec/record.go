package codec

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/voxgo/record"
	"github.com/hupe1980/voxgo/seg"
	"github.com/hupe1980/voxgo/volume"
)

// Record frame layout:
//
//	[magic:4]                                  "VXR0"
//	[version:uvarint]
//	[entry count:uvarint]
//	per entry, in sorted key order:
//	  [key length:uvarint][key]
//	  [tag:1][value length:uvarint][value]
var (
	recordMagic   = [4]byte{'V', 'X', 'R', '0'}
	recordVersion = uint64(1)
)

const (
	tagJSON   = 0x00
	tagVolume = 0x01
	tagBoxes  = 0x02
)

// EncodeRecord serializes a record into a self-describing frame.
//
// Volume values are embedded as volume frames compressed with c (nil
// means Default) and box slices use a compact varint form; both decode
// back to their original types. Every other value round-trips through
// JSON with the usual encoding/json conventions, so numbers come back as
// float64 and slices as []any. Entries are written in sorted key order,
// making identical records encode identically.
func EncodeRecord(r record.Record, c Compressor) ([]byte, error) {
	keys := slices.Sorted(maps.Keys(r))

	// Rough size guess to avoid some growth copies.
	buf := make([]byte, 0, 16+len(keys)*32)
	buf = append(buf, recordMagic[:]...)
	buf = binary.AppendUvarint(buf, recordVersion)
	buf = binary.AppendUvarint(buf, uint64(len(keys)))

	for _, k := range keys {
		tag, value, err := encodeValue(r[k], c)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record value %q: %w", k, err)
		}

		buf = binary.AppendUvarint(buf, uint64(len(k)))
		buf = append(buf, k...)
		buf = append(buf, tag)
		buf = binary.AppendUvarint(buf, uint64(len(value)))
		buf = append(buf, value...)
	}

	return buf, nil
}

func encodeValue(v any, c Compressor) (byte, []byte, error) {
	switch v := v.(type) {
	case *volume.Volume[int8]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[int16]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[int32]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[int64]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[uint8]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[uint16]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[uint32]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case *volume.Volume[uint64]:
		b, err := Encode(v, c)
		return tagVolume, b, err
	case []seg.Box:
		return tagBoxes, appendBoxes(nil, v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return 0, nil, err
		}
		return tagJSON, b, nil
	}
}

// DecodeRecord parses a frame produced by EncodeRecord.
func DecodeRecord(frame []byte) (record.Record, error) {
	if len(frame) < len(recordMagic) || [4]byte(frame[:4]) != recordMagic {
		return nil, ErrBadMagic
	}
	rest := frame[len(recordMagic):]

	version, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated version", ErrCorrupt)
	}
	rest = rest[n:]
	if version != recordVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}

	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated entry count", ErrCorrupt)
	}
	rest = rest[n:]
	// Every entry takes at least three bytes.
	if count > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: entry count %d", ErrCorrupt, count)
	}

	r := make(record.Record, count)
	for range count {
		keyLen, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, fmt.Errorf("%w: truncated key length", ErrCorrupt)
		}
		rest = rest[n:]
		if keyLen > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: short buffer for key", ErrCorrupt)
		}
		key := string(rest[:keyLen])
		rest = rest[keyLen:]

		if len(rest) == 0 {
			return nil, fmt.Errorf("%w: missing value tag", ErrCorrupt)
		}
		tag := rest[0]
		rest = rest[1:]

		valLen, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, fmt.Errorf("%w: truncated value length", ErrCorrupt)
		}
		rest = rest[n:]
		if valLen > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: short buffer for value", ErrCorrupt)
		}
		value := rest[:valLen]
		rest = rest[valLen:]

		switch tag {
		case tagJSON:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			r[key] = v
		case tagVolume:
			v, err := decodeAny(value)
			if err != nil {
				return nil, err
			}
			r[key] = v
		case tagBoxes:
			v, err := parseBoxes(value)
			if err != nil {
				return nil, err
			}
			r[key] = v
		default:
			return nil, fmt.Errorf("%w: unknown value tag 0x%02x", ErrCorrupt, tag)
		}
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after entries", ErrCorrupt, len(rest))
	}
	return r, nil
}

func appendBoxes(buf []byte, boxes []seg.Box) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(boxes)))
	for _, b := range boxes {
		buf = binary.AppendUvarint(buf, uint64(len(b)))
		for _, c := range b {
			buf = binary.AppendVarint(buf, int64(c))
		}
	}
	return buf
}

func parseBoxes(data []byte) ([]seg.Box, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("%w: truncated box count", ErrCorrupt)
	}
	data = data[n:]
	// Every box takes at least one byte.
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("%w: box count %d", ErrCorrupt, count)
	}

	boxes := make([]seg.Box, 0, count)
	for range count {
		boxLen, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, fmt.Errorf("%w: truncated box length", ErrCorrupt)
		}
		data = data[n:]
		if boxLen > uint64(len(data)) {
			return nil, fmt.Errorf("%w: box length %d", ErrCorrupt, boxLen)
		}

		b := make(seg.Box, boxLen)
		for i := range b {
			c, n := binary.Varint(data)
			if n <= 0 {
				return nil, fmt.Errorf("%w: truncated box coordinate", ErrCorrupt)
			}
			data = data[n:]
			b[i] = int(c)
		}
		boxes = append(boxes, b)
	}

	if len(data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after boxes", ErrCorrupt, len(data))
	}
	return boxes, nil
}
