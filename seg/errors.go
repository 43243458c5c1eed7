package seg

import (
	"errors"
	"fmt"
)

var (
	// ErrSpatialDims is returned when a decode is requested for a
	// dimensionality other than 2 or 3.
	ErrSpatialDims = errors.New("spatial dims must be 2 or 3")

	// ErrLabelOverflow is returned when a box list is too long for its
	// 1-based labels to fit the volume's element type.
	ErrLabelOverflow = errors.New("box count overflows label type")
)

// InvalidBoxLengthError indicates a box whose coordinate count is neither
// 4 (2-D) nor 6 (3-D).
type InvalidBoxLengthError struct {
	Index int // position in the input slice, -1 if unknown
	Len   int
}

func (e *InvalidBoxLengthError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid box length: %d coordinates (want 4 or 6)", e.Len)
	}
	return fmt.Sprintf("invalid box length: box %d has %d coordinates (want 4 or 6)", e.Index, e.Len)
}

// EmptyInstanceError indicates a label in the contiguous range 1..max that
// occupies no voxels during decode.
type EmptyInstanceError struct {
	Label uint64
}

func (e *EmptyInstanceError) Error() string {
	return fmt.Sprintf("empty instance: label %d has no voxels", e.Label)
}

// ClassRangeError indicates an instance label beyond the end of the class
// map during semantic remapping.
type ClassRangeError struct {
	Label   uint64
	Classes int
}

func (e *ClassRangeError) Error() string {
	return fmt.Sprintf("instance label %d out of range for class map of length %d", e.Label, e.Classes)
}

// RankError indicates a volume with fewer axes than the spatial
// dimensionality of the boxes it is asked to hold.
type RankError struct {
	Rank int
	Need int
}

func (e *RankError) Error() string {
	return fmt.Sprintf("volume rank %d cannot hold %d-d boxes", e.Rank, e.Need)
}
