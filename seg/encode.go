package seg

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxgo/volume"
)

// FromBoxes rasterizes boxes into a freshly allocated volume of the given
// shape.
//
// The box at input position i (0-based) is painted with label i+1; where
// boxes overlap, the later box wins. Label 0 remains background. A box's
// length selects its dimensionality (4 or 6 coordinates); its coordinates
// constrain the trailing 2 or 3 axes of the volume, and any leading axes
// are painted across their full extent. Coordinates reaching outside the
// grid are clipped to it; a box whose clipped extent is empty paints
// nothing.
//
// The whole box list is validated before any painting, so on error no
// partial result exists. Fails with InvalidBoxLengthError on a malformed
// box, RankError when the volume has fewer axes than a box needs, and
// ErrLabelOverflow when len(boxes) does not fit the element type.
func FromBoxes[T volume.Label](boxes []Box, shape ...int) (*volume.Volume[T], error) {
	out, err := volume.New[T](shape...)
	if err != nil {
		return nil, err
	}

	if err := validateBoxes[T](boxes, out.Rank()); err != nil {
		return nil, err
	}

	paint(out, boxes)

	return out, nil
}

// FromBoxesInto rasterizes boxes into out, zeroing it first.
//
// Semantics match FromBoxes; out supplies the shape. On error out is left
// untouched. The caller owns out and must serialize concurrent calls that
// share it.
func FromBoxesInto[T volume.Label](out *volume.Volume[T], boxes []Box) error {
	if out == nil {
		return errors.New("nil output volume")
	}

	if err := validateBoxes[T](boxes, out.Rank()); err != nil {
		return err
	}

	out.Zero()
	paint(out, boxes)

	return nil
}

// validateBoxes checks every box length against the volume rank and the
// label range against T before anything is painted.
func validateBoxes[T volume.Label](boxes []Box, rank int) error {
	for i, b := range boxes {
		d, err := b.Dims()
		if err != nil {
			return &InvalidBoxLengthError{Index: i, Len: len(b)}
		}
		if rank < d {
			return &RankError{Rank: rank, Need: d}
		}
	}

	if n := len(boxes); uint64(T(n)) != uint64(n) {
		return fmt.Errorf("%w: %d boxes", ErrLabelOverflow, n)
	}

	return nil
}

// paint fills the clipped hyper-rectangle of each box with its 1-based
// label, later boxes overwriting earlier ones. Boxes must be validated.
func paint[T volume.Label](out *volume.Volume[T], boxes []Box) {
	shape := out.Shape()
	strides := out.Strides()
	data := out.Data()
	rank := len(shape)

	loB := make([]int, rank)
	hiB := make([]int, rank)
	idx := make([]int, rank)

	for i, b := range boxes {
		d, _ := b.Dims()
		base := rank - d

		empty := false
		for ax := 0; ax < rank; ax++ {
			lo, hi := 0, shape[ax]-1
			if ax >= base {
				a := ax - base
				if m := b.Min(a); m > lo {
					lo = m
				}
				if m := b.Max(a); m < hi {
					hi = m
				}
			}
			if lo > hi {
				empty = true
				break
			}
			loB[ax], hiB[ax] = lo, hi
		}
		if empty {
			continue
		}

		label := T(i + 1)
		span := hiB[rank-1] - loB[rank-1] + 1

		off := 0
		for ax, c := range loB {
			idx[ax] = c
			off += c * strides[ax]
		}

		// Walk the rectangle as contiguous innermost-axis runs; the
		// remaining axes advance odometer-style.
		for {
			row := data[off : off+span]
			for j := range row {
				row[j] = label
			}

			ax := rank - 2
			for ax >= 0 {
				idx[ax]++
				off += strides[ax]
				if idx[ax] <= hiB[ax] {
					break
				}
				off -= (idx[ax] - loB[ax]) * strides[ax]
				idx[ax] = loB[ax]
				ax--
			}
			if ax < 0 {
				break
			}
		}
	}
}
