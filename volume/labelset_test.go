package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSet(t *testing.T) {
	t.Run("add and contains", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(1)
		s.Add(3)
		s.Add(3)

		assert.True(t, s.Contains(1))
		assert.True(t, s.Contains(3))
		assert.False(t, s.Contains(2))
		assert.Equal(t, uint64(2), s.Cardinality())
	})

	t.Run("remove", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(1)
		s.Add(2)
		s.Remove(1)

		assert.False(t, s.Contains(1))
		assert.Equal(t, uint64(1), s.Cardinality())
	})

	t.Run("empty", func(t *testing.T) {
		s := NewLabelSet()
		assert.True(t, s.IsEmpty())
		assert.Equal(t, uint64(0), s.Min())
		assert.Equal(t, uint64(0), s.Max())
	})

	t.Run("min and max", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(4)
		s.Add(2)
		s.Add(9)

		assert.Equal(t, uint64(2), s.Min())
		assert.Equal(t, uint64(9), s.Max())
	})

	t.Run("values sorted", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(5)
		s.Add(1)
		s.Add(3)

		assert.Equal(t, []uint64{1, 3, 5}, s.Values())
	})

	t.Run("clone is independent", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(1)

		c := s.Clone()
		c.Add(2)

		assert.False(t, s.Contains(2))
		assert.True(t, c.Contains(2))
	})
}

func TestLabelSetFirstGap(t *testing.T) {
	t.Run("empty has no gap", func(t *testing.T) {
		_, ok := NewLabelSet().FirstGap()
		assert.False(t, ok)
	})

	t.Run("contiguous from one", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(1)
		s.Add(2)
		s.Add(3)

		_, ok := s.FirstGap()
		assert.False(t, ok)
	})

	t.Run("hole in the middle", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(1)
		s.Add(3)

		gap, ok := s.FirstGap()
		assert.True(t, ok)
		assert.Equal(t, uint64(2), gap)
	})

	t.Run("does not start at one", func(t *testing.T) {
		s := NewLabelSet()
		s.Add(2)
		s.Add(3)

		gap, ok := s.FirstGap()
		assert.True(t, ok)
		assert.Equal(t, uint64(1), gap)
	})
}

func TestLabelSetAll(t *testing.T) {
	s := NewLabelSet()
	s.Add(2)
	s.Add(4)
	s.Add(6)

	t.Run("yields ascending", func(t *testing.T) {
		var got []uint64
		for v := range s.All() {
			got = append(got, v)
		}
		assert.Equal(t, []uint64{2, 4, 6}, got)
	})

	t.Run("early stop", func(t *testing.T) {
		var got []uint64
		for v := range s.All() {
			got = append(got, v)
			if len(got) == 2 {
				break
			}
		}
		assert.Equal(t, []uint64{2, 4}, got)
	})
}
