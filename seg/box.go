package seg

// Box is an axis-aligned bounding box with inclusive coordinates.
//
// The coordinate layout mirrors the on-record format used by annotation
// pipelines:
//
//	2-D (len 4): min0, min1, max0, max1
//	3-D (len 6): min0, min1, max0, max1, min2, max2
//
// Note the third axis appends its min/max pair at the end rather than
// extending the min-block/max-block split. Use Min and Max instead of
// indexing directly.
type Box []int

// Box2D builds a 2-D box from per-axis inclusive bounds.
func Box2D(min0, min1, max0, max1 int) Box {
	return Box{min0, min1, max0, max1}
}

// Box3D builds a 3-D box from per-axis inclusive bounds.
func Box3D(min0, min1, max0, max1, min2, max2 int) Box {
	return Box{min0, min1, max0, max1, min2, max2}
}

// Dims returns the spatial dimensionality encoded by the box's length:
// 2 for four coordinates, 3 for six. Any other length is an
// InvalidBoxLengthError.
func (b Box) Dims() (int, error) {
	switch len(b) {
	case 4:
		return 2, nil
	case 6:
		return 3, nil
	default:
		return 0, &InvalidBoxLengthError{Index: -1, Len: len(b)}
	}
}

// Min returns the inclusive lower bound on the given axis.
// The axis must be less than Dims.
func (b Box) Min(axis int) int {
	if axis < 2 {
		return b[axis]
	}
	return b[2*axis]
}

// Max returns the inclusive upper bound on the given axis.
// The axis must be less than Dims.
func (b Box) Max(axis int) int {
	if axis < 2 {
		return b[axis+2]
	}
	return b[2*axis+1]
}
