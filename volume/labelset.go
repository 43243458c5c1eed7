package volume

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// LabelSet is a set of positive instance labels.
// It wraps a 64-bit Roaring Bitmap, so dense label ranges stay compact
// even for volumes with many instances.
type LabelSet struct {
	rb *roaring64.Bitmap
}

// NewLabelSet creates a new empty label set.
func NewLabelSet() *LabelSet {
	return &LabelSet{
		rb: roaring64.New(),
	}
}

// Add adds a label to the set.
func (s *LabelSet) Add(label uint64) {
	s.rb.Add(label)
}

// Remove removes a label from the set.
func (s *LabelSet) Remove(label uint64) {
	s.rb.Remove(label)
}

// Contains checks if a label is in the set.
func (s *LabelSet) Contains(label uint64) bool {
	return s.rb.Contains(label)
}

// IsEmpty returns true if the set is empty.
func (s *LabelSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of labels in the set.
func (s *LabelSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Min returns the smallest label, or 0 if the set is empty.
func (s *LabelSet) Min() uint64 {
	if s.rb.IsEmpty() {
		return 0
	}
	return s.rb.Minimum()
}

// Max returns the largest label, or 0 if the set is empty.
func (s *LabelSet) Max() uint64 {
	if s.rb.IsEmpty() {
		return 0
	}
	return s.rb.Maximum()
}

// FirstGap returns the smallest label in 1..Max() that is missing from the
// set. ok is false when the set is exactly 1..Max() (or empty), i.e. the
// labels form a contiguous run starting at 1.
func (s *LabelSet) FirstGap() (gap uint64, ok bool) {
	want := uint64(1)
	it := s.rb.Iterator()
	for it.HasNext() {
		if got := it.Next(); got != want {
			return want, true
		}
		want++
	}
	return 0, false
}

// Values returns the labels in ascending order.
func (s *LabelSet) Values() []uint64 {
	return s.rb.ToArray()
}

// All returns an iterator over the labels in ascending order.
func (s *LabelSet) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (s *LabelSet) Clone() *LabelSet {
	return &LabelSet{
		rb: s.rb.Clone(),
	}
}
