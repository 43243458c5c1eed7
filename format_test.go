package voxgo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/voxgo/record"
)

func TestPopKeys(t *testing.T) {
	t.Run("RemovesSelected", func(t *testing.T) {
		r := record.Record{"image": 1, "seg": 2, "debug": 3}

		out, err := PopKeys(record.Keys{"debug"}).Apply(r)
		require.NoError(t, err)

		assert.Equal(t, record.Record{"image": 1, "seg": 2}, out)
		// The input record is untouched.
		assert.Len(t, r, 3)
	})

	t.Run("MissingKey", func(t *testing.T) {
		r := record.Record{"image": 1}

		_, err := PopKeys(record.Keys{"seg"}).Apply(r)
		require.ErrorIs(t, err, ErrKeyNotFound)

		var knf *record.KeyNotFoundError
		require.ErrorAs(t, err, &knf)
		assert.Equal(t, "seg", knf.Key)
	})

	t.Run("Predicate", func(t *testing.T) {
		r := record.Record{"image": 1, "debug_loss": 2, "debug_time": 3}

		tr := PopKeys(record.Predicate(func(key string) bool {
			return strings.HasPrefix(key, "debug_")
		}))

		out, err := tr.Apply(r)
		require.NoError(t, err)
		assert.Equal(t, record.Record{"image": 1}, out)

		// A predicate selecting nothing removes nothing.
		out, err = tr.Apply(record.Record{"image": 1})
		require.NoError(t, err)
		assert.Equal(t, record.Record{"image": 1}, out)
	})
}

func TestFilterKeys(t *testing.T) {
	t.Run("KeepsSelected", func(t *testing.T) {
		r := record.Record{"image": 1, "seg": 2, "debug": 3}

		out, err := FilterKeys(record.Keys{"image", "seg"}).Apply(r)
		require.NoError(t, err)

		assert.Equal(t, record.Record{"image": 1, "seg": 2}, out)
		assert.Len(t, r, 3)
	})

	t.Run("AbsentKeyIgnored", func(t *testing.T) {
		r := record.Record{"image": 1}

		out, err := FilterKeys(record.Keys{"image", "seg"}).Apply(r)
		require.NoError(t, err)
		assert.Equal(t, record.Record{"image": 1}, out)
	})

	t.Run("Predicate", func(t *testing.T) {
		r := record.Record{"image": 1, "debug": 2}

		out, err := FilterKeys(record.Predicate(func(key string) bool {
			return key == "image"
		})).Apply(r)
		require.NoError(t, err)
		assert.Equal(t, record.Record{"image": 1}, out)
	})
}

func TestMapToSeq(t *testing.T) {
	t.Run("ExtractsInOrder", func(t *testing.T) {
		r := record.Record{"image": "img", "seg": "mask", "id": 7}

		seq, err := NewMapToSeq([]string{"seg", "image"}).Apply(r)
		require.NoError(t, err)
		assert.Equal(t, []any{"mask", "img"}, seq)
	})

	t.Run("MissingKey", func(t *testing.T) {
		r := record.Record{"image": "img"}

		_, err := NewMapToSeq([]string{"image", "seg"}).Apply(r)
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("KeysCopied", func(t *testing.T) {
		keys := []string{"image"}
		tr := NewMapToSeq(keys)

		keys[0] = "mutated"
		assert.Equal(t, []string{"image"}, tr.Keys())

		// The accessor hands out a copy as well.
		tr.Keys()[0] = "mutated"
		assert.Equal(t, []string{"image"}, tr.Keys())
	})
}

func TestSeqToMap(t *testing.T) {
	t.Run("ZipsPositionally", func(t *testing.T) {
		out, err := NewSeqToMap([]string{"image", "seg"}).Apply([]any{"img", "mask"})
		require.NoError(t, err)
		assert.Equal(t, record.Record{"image": "img", "seg": "mask"}, out)
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		_, err := NewSeqToMap([]string{"image", "seg"}).Apply([]any{"img"})
		require.ErrorIs(t, err, ErrArityMismatch)

		var am *record.ArityMismatchError
		require.ErrorAs(t, err, &am)
		assert.Equal(t, 2, am.Keys)
		assert.Equal(t, 1, am.Values)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		keys := []string{"image", "seg", "id"}
		r := record.Record{"image": "img", "seg": "mask", "id": 7}

		seq, err := NewMapToSeq(keys).Apply(r)
		require.NoError(t, err)

		back, err := NewSeqToMap(keys).Apply(seq)
		require.NoError(t, err)
		assert.Equal(t, r, back)
	})
}
