package volume

import (
	"fmt"
	"math"
	"slices"
)

// Label is the set of element types a Volume can hold.
//
// Only fixed-width integers are allowed. Platform-dependent widths (int,
// uint) would make encoded volumes non-portable, so they are excluded on
// purpose.
type Label interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Volume is a dense n-dimensional grid of labels stored in row-major order.
//
// The zero value is not usable; construct volumes with New, Must or
// FromData. All methods are safe for concurrent readers; writers require
// external serialization.
type Volume[T Label] struct {
	shape   []int
	strides []int
	data    []T
}

// Elems validates a shape and returns its total element count. It backs
// the constructors here and lets codecs check untrusted headers before
// allocating.
func Elems(shape ...int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: no axes", ErrInvalidShape)
	}

	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("%w: dimension %d", ErrInvalidShape, d)
		}
		if n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: element count overflows int", ErrInvalidShape)
		}
		n *= d
	}

	return n, nil
}

// newStrides computes row-major strides for a validated shape.
func newStrides(shape []int) []int {
	strides := make([]int, len(shape))
	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}
	return strides
}

// New creates a zero-filled volume with the given shape.
func New[T Label](shape ...int) (*Volume[T], error) {
	n, err := Elems(shape...)
	if err != nil {
		return nil, err
	}

	s := slices.Clone(shape)

	return &Volume[T]{
		shape:   s,
		strides: newStrides(s),
		data:    make([]T, n),
	}, nil
}

// Must creates a zero-filled volume with the given shape and panics if the
// shape is invalid. Intended for tests and static shapes.
func Must[T Label](shape ...int) *Volume[T] {
	v, err := New[T](shape...)
	if err != nil {
		panic(fmt.Errorf("volume: %w", err))
	}
	return v
}

// FromData wraps an existing slice as a volume with the given shape.
//
// The slice is adopted, not copied: the volume and the caller alias the
// same backing array afterwards.
func FromData[T Label](data []T, shape ...int) (*Volume[T], error) {
	n, err := Elems(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrDataSize, shape, n, len(data))
	}

	s := slices.Clone(shape)

	return &Volume[T]{
		shape:   s,
		strides: newStrides(s),
		data:    data,
	}, nil
}

// MustFromData is like FromData but panics on error. Intended for tests
// and static data.
func MustFromData[T Label](data []T, shape ...int) *Volume[T] {
	v, err := FromData(data, shape...)
	if err != nil {
		panic(fmt.Errorf("volume: %w", err))
	}
	return v
}

// Shape returns a copy of the volume's shape.
func (v *Volume[T]) Shape() []int { return slices.Clone(v.shape) }

// Strides returns a copy of the volume's row-major strides.
func (v *Volume[T]) Strides() []int { return slices.Clone(v.strides) }

// Rank returns the number of axes.
func (v *Volume[T]) Rank() int { return len(v.shape) }

// Len returns the total number of elements.
func (v *Volume[T]) Len() int { return len(v.data) }

// Dim returns the size of the given axis.
func (v *Volume[T]) Dim(axis int) int {
	if axis < 0 || axis >= len(v.shape) {
		panic(fmt.Sprintf("volume: axis %d out of range for rank %d", axis, len(v.shape)))
	}
	return v.shape[axis]
}

// Data returns the backing slice in row-major order.
//
// The slice is shared with the volume, not a copy. Mutating it mutates the
// volume.
func (v *Volume[T]) Data() []T { return v.data }

func (v *Volume[T]) offset(coords []int) int {
	if len(coords) != len(v.shape) {
		panic(fmt.Sprintf("volume: got %d coordinates for rank %d", len(coords), len(v.shape)))
	}

	off := 0
	for i, c := range coords {
		if c < 0 || c >= v.shape[i] {
			panic(fmt.Sprintf("volume: coordinate %d out of range [0,%d) on axis %d", c, v.shape[i], i))
		}
		off += c * v.strides[i]
	}

	return off
}

// At returns the element at the given coordinates.
// It panics if the coordinate count does not match the rank or a
// coordinate is out of range.
func (v *Volume[T]) At(coords ...int) T {
	return v.data[v.offset(coords)]
}

// Set stores val at the given coordinates.
// It panics under the same conditions as At.
func (v *Volume[T]) Set(val T, coords ...int) {
	v.data[v.offset(coords)] = val
}

// Zero resets every element to the zero label.
func (v *Volume[T]) Zero() {
	clear(v.data)
}

// Max returns the largest element. The volume is never empty, so there is
// no ok result.
func (v *Volume[T]) Max() T {
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Clone returns a deep copy of the volume.
func (v *Volume[T]) Clone() *Volume[T] {
	return &Volume[T]{
		shape:   slices.Clone(v.shape),
		strides: slices.Clone(v.strides),
		data:    slices.Clone(v.data),
	}
}

// Equal reports whether o has the same shape and elements as v.
// It is also picked up by go-cmp when diffing volumes in tests.
func (v *Volume[T]) Equal(o *Volume[T]) bool {
	if v == nil || o == nil {
		return v == o
	}
	return slices.Equal(v.shape, o.shape) && slices.Equal(v.data, o.data)
}

// ShapeEqual reports whether o has the same shape as v, regardless of
// contents.
func (v *Volume[T]) ShapeEqual(o *Volume[T]) bool {
	if v == nil || o == nil {
		return v == o
	}
	return slices.Equal(v.shape, o.shape)
}

// Labels collects the distinct positive labels present in the volume.
// Zero and negative elements are background and not included.
func (v *Volume[T]) Labels() *LabelSet {
	s := NewLabelSet()
	for _, x := range v.data {
		if x > 0 {
			s.Add(uint64(x))
		}
	}
	return s
}
