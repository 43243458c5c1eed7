package seg

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/voxgo/volume"
)

// labelBounds accumulates the per-axis extent of one instance over the
// trailing spatial axes.
type labelBounds struct {
	lo [3]int
	hi [3]int
}

func newLabelBounds() *labelBounds {
	return &labelBounds{
		lo: [3]int{math.MaxInt, math.MaxInt, math.MaxInt},
		hi: [3]int{-1, -1, -1},
	}
}

func (lb *labelBounds) update(coord []int) {
	for a, c := range coord {
		if c < lb.lo[a] {
			lb.lo[a] = c
		}
		if c > lb.hi[a] {
			lb.hi[a] = c
		}
	}
}

// ToBoxes decodes an instance segmentation volume back into bounding
// boxes.
//
// For every label from 1 up to the maximum present, the result holds the
// inclusive bounding box of that label's voxels over the trailing
// spatialDims axes (leading axes are ignored, so a multi-channel volume
// decodes per spatial position). Box i (0-based) corresponds to label
// i+1. Non-positive elements are background.
//
// A volume with no positive labels decodes to nil. Labels are expected to
// be contiguous starting at 1: if any label up to the maximum has no
// voxels, ToBoxes fails with EmptyInstanceError for the smallest such
// label. spatialDims must be 2 or 3 and must not exceed the volume rank.
func ToBoxes[T volume.Label](vol *volume.Volume[T], spatialDims int) ([]Box, error) {
	if spatialDims != 2 && spatialDims != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrSpatialDims, spatialDims)
	}

	rank := vol.Rank()
	if rank < spatialDims {
		return nil, &RankError{Rank: rank, Need: spatialDims}
	}

	shape := vol.Shape()
	data := vol.Data()
	base := rank - spatialDims

	bounds := make(map[uint64]*labelBounds)
	seen := bitset.New(64)

	// A contiguous run of labels cannot reach past the voxel count, so
	// anything above it stays out of the bitset and only flags the hole
	// check.
	labelCap := uint64(len(data))
	var (
		maxSeen  uint
		overflow bool
	)

	// Single pass in flat order; coord tracks the trailing spatial axes
	// and wraps like an odometer as the flat index advances.
	coord := make([]int, spatialDims)
	for _, x := range data {
		if x > 0 {
			l := uint64(x)
			lb := bounds[l]
			if lb == nil {
				lb = newLabelBounds()
				bounds[l] = lb

				if l > labelCap {
					overflow = true
				} else {
					seen.Set(uint(l))
					if uint(l) > maxSeen {
						maxSeen = uint(l)
					}
				}
			}
			lb.update(coord)
		}

		for a := spatialDims - 1; a >= 0; a-- {
			coord[a]++
			if coord[a] < shape[base+a] {
				break
			}
			coord[a] = 0
		}
	}

	if len(bounds) == 0 {
		return nil, nil
	}

	// Labels must be contiguous from 1; the smallest absent one is the
	// first hole.
	if gap, ok := seen.NextClear(1); ok && gap <= maxSeen {
		return nil, &EmptyInstanceError{Label: uint64(gap)}
	}
	if overflow {
		return nil, &EmptyInstanceError{Label: uint64(maxSeen) + 1}
	}

	boxes := make([]Box, 0, maxSeen)
	for l := uint(1); l <= maxSeen; l++ {
		lb := bounds[uint64(l)]

		b := make(Box, 2*spatialDims)
		b[0], b[1] = lb.lo[0], lb.lo[1]
		b[2], b[3] = lb.hi[0], lb.hi[1]
		if spatialDims == 3 {
			b[4], b[5] = lb.lo[2], lb.hi[2]
		}

		boxes = append(boxes, b)
	}

	return boxes, nil
}
