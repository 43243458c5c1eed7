// Package voxgo provides data-reshaping primitives for imaging preprocessing pipelines.
//
// Voxgo reshapes sample records between the layouts that loaders, augmentation
// stages and training loops expect, with production-ready features including:
//
//   - Key reshaping: PopKeys and FilterKeys over explicit key lists or predicates
//   - Boundary adapters between keyed records and positional sequences
//   - Segmentation codecs: box lists painted into labeled volumes and back (2-D and 3-D)
//   - Instance-to-semantic class remapping with contiguity validation
//   - Generic dense volumes over all eight fixed-width integer kinds
//   - Self-describing compressed frames (LZ4, Zstandard) for volumes and whole records
//   - Structured logging (slog) and pluggable metrics per transform
//
// # Transforms
//
// A Transform rewrites one record into a new one and never mutates its
// input. Transforms are constructed once and applied to many records:
//
//   - PopKeys removes selected entries
//   - FilterKeys keeps only selected entries
//   - BoxToSeg paints a box list into a fresh instance segmentation volume
//   - SegToBox recovers the tightest box per instance label
//   - InstanceToSemantic maps instance labels to semantic classes
//
// # Quick Start
//
// Paint ground-truth boxes into a segmentation mask and trim the record
// down to the keys the next stage consumes:
//
//	r := record.Record{
//	    "image": img, // *volume.Volume[int16]
//	    "boxes": []seg.Box{{0, 0, 1, 1}, {2, 2, 3, 3}},
//	    "id":    "case-0017",
//	}
//
//	paint := voxgo.BoxToSeg[uint8]("boxes", "seg", []int{4, 4})
//	r, err := paint.Apply(r)
//	if err != nil {
//	    panic(err)
//	}
//
//	keep := voxgo.FilterKeys(record.Keys{"image", "seg"})
//	r, _ = keep.Apply(r)
//
// Sequence-based stages sit behind the boundary adapters:
//
//	toSeq := voxgo.NewMapToSeq([]string{"image", "seg"})
//	seq, err := toSeq.Apply(r)
//
//	toMap := voxgo.NewSeqToMap([]string{"image", "seg"})
//	r, err = toMap.Apply(seq)
//
// # Volumes and Frames
//
// The volume package holds the generic dense arrays the transforms operate
// on, the seg package holds the shape-level codecs, and the codec package
// serializes volumes and records into self-describing compressed frames:
//
//	frame, err := codec.Encode(vol, codec.Zstd{})
//	back, err := codec.Decode[uint8](frame)
//
// Errors from all transforms are normalized: check them with errors.Is
// against the package sentinels (ErrKeyNotFound, ErrEmptyInstance, ...) or
// with errors.As against the typed errors (ErrShapeMismatch,
// ErrInvalidValueType).
package voxgo

import (
	"github.com/hupe1980/voxgo/record"
)

// Transform is one reshaping step in a preprocessing pipeline. Implementations
// are safe for concurrent use when their inputs are.
type Transform interface {
	// Name identifies the transform in logs and metrics.
	Name() string

	// Grad reports whether downstream stages should keep gradient
	// bookkeeping for the values this transform produces. The flag is
	// carried verbatim; transforms here never act on it.
	Grad() bool

	// Apply reshapes r into a new record. The input record is never
	// mutated, but values are shared between input and output.
	Apply(r record.Record) (record.Record, error)
}

// base carries the identity and instrumentation shared by all transforms.
type base struct {
	name    string
	grad    bool
	metrics MetricsCollector
	logger  *Logger
}

func newBase(name string, optFns []Option) base {
	o := applyOptions(optFns)
	return base{
		name:    name,
		grad:    o.grad,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
}

// Name implements Transform.
func (b *base) Name() string { return b.name }

// Grad implements Transform.
func (b *base) Grad() bool { return b.grad }
