package seg

import (
	"errors"

	"github.com/hupe1980/voxgo/volume"
)

// InstanceToSemantic remaps an instance segmentation volume to a semantic
// one: every voxel with instance label i (1-based) becomes classes[i-1],
// background and negative labels become 0.
//
// The input volume is never mutated. Fails with ClassRangeError if any
// present label exceeds len(classes).
func InstanceToSemantic[T volume.Label](vol *volume.Volume[T], classes []T) (*volume.Volume[T], error) {
	out, err := volume.New[T](vol.Shape()...)
	if err != nil {
		return nil, err
	}

	if err := InstanceToSemanticInto(out, vol, classes); err != nil {
		return nil, err
	}

	return out, nil
}

// InstanceToSemanticInto remaps vol into out, which must have the same
// shape.
//
// The volume is validated before any element is written, so on error out
// is left untouched. Passing the same volume as out and vol remaps it in
// place.
func InstanceToSemanticInto[T volume.Label](out, vol *volume.Volume[T], classes []T) error {
	if out == nil {
		return errors.New("nil output volume")
	}
	if !out.ShapeEqual(vol) {
		return volume.NewShapeMismatchError(vol.Shape(), out.Shape())
	}

	if m := vol.Max(); m > 0 && uint64(m) > uint64(len(classes)) {
		return &ClassRangeError{Label: uint64(m), Classes: len(classes)}
	}

	src := vol.Data()
	dst := out.Data()
	for i, x := range src {
		if x > 0 {
			dst[i] = classes[int(x)-1]
		} else {
			dst[i] = 0
		}
	}

	return nil
}
