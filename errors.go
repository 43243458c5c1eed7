package voxgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxgo/record"
	"github.com/hupe1980/voxgo/seg"
	"github.com/hupe1980/voxgo/volume"
)

var (
	// ErrKeyNotFound is returned when a transform needs a record key that
	// is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrArityMismatch is returned when a sequence and its key list have
	// different lengths.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrInvalidBoxLength is returned when a box has a coordinate count
	// other than 4 (2-D) or 6 (3-D).
	ErrInvalidBoxLength = errors.New("invalid box length")

	// ErrEmptyInstance is returned when a labeled volume skips an instance
	// label, so the decoded box list would not round-trip.
	ErrEmptyInstance = errors.New("empty instance")

	// ErrClassRange is returned when an instance label has no entry in the
	// class map.
	ErrClassRange = errors.New("class out of range")
)

// ErrShapeMismatch indicates a volume whose shape differs from what a
// transform requires.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrShapeMismatch struct {
	Want  []int
	Got   []int
	cause error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: want %v, got %v", e.Want, e.Got)
}

func (e *ErrShapeMismatch) Unwrap() error { return e.cause }

// ErrInvalidValueType indicates a record value whose dynamic type does not
// match what the transform expects under that key.
type ErrInvalidValueType struct {
	Key  string
	Want string
	Got  any
}

func (e *ErrInvalidValueType) Error() string {
	return fmt.Sprintf("record value %q is %T, expected %s", e.Key, e.Got, e.Want)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Record access unification.
	var knf *record.KeyNotFoundError
	if errors.As(err, &knf) {
		return fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}
	var am *record.ArityMismatchError
	if errors.As(err, &am) {
		return fmt.Errorf("%w: %w", ErrArityMismatch, err)
	}

	// Geometry normalization.
	var ibl *seg.InvalidBoxLengthError
	if errors.As(err, &ibl) {
		return fmt.Errorf("%w: %w", ErrInvalidBoxLength, err)
	}
	var ei *seg.EmptyInstanceError
	if errors.As(err, &ei) {
		return fmt.Errorf("%w: %w", ErrEmptyInstance, err)
	}
	var cr *seg.ClassRangeError
	if errors.As(err, &cr) {
		return fmt.Errorf("%w: %w", ErrClassRange, err)
	}
	var sm *volume.ShapeMismatchError
	if errors.As(err, &sm) {
		return &ErrShapeMismatch{Want: sm.Want, Got: sm.Got, cause: err}
	}

	return err
}
