package volume

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when a shape has no axes, a non-positive
	// dimension, or an element count that overflows int.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrDataSize is returned when a backing slice does not match the
	// element count implied by the shape.
	ErrDataSize = errors.New("data length does not match shape")
)

// ShapeMismatchError indicates that a caller-provided volume does not have
// the shape an operation requires.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ShapeMismatchError struct {
	Want  []int
	Got   []int
	cause error
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: want %v, got %v", e.Want, e.Got)
}

func (e *ShapeMismatchError) Unwrap() error { return e.cause }

// NewShapeMismatchError constructs a ShapeMismatchError from copies of the
// two shapes, so neither argument is retained.
func NewShapeMismatchError(want, got []int) *ShapeMismatchError {
	return &ShapeMismatchError{
		Want: append([]int(nil), want...),
		Got:  append([]int(nil), got...),
	}
}
