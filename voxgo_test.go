package voxgo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/voxgo/record"
	"github.com/hupe1980/voxgo/seg"
	"github.com/hupe1980/voxgo/volume"
)

func TestTranslateError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("Sentinels", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want error
		}{
			{name: "key not found", err: &record.KeyNotFoundError{Key: "image"}, want: ErrKeyNotFound},
			{name: "arity mismatch", err: &record.ArityMismatchError{Keys: 2, Values: 3}, want: ErrArityMismatch},
			{name: "invalid box length", err: &seg.InvalidBoxLengthError{Index: 0, Len: 5}, want: ErrInvalidBoxLength},
			{name: "empty instance", err: &seg.EmptyInstanceError{Label: 2}, want: ErrEmptyInstance},
			{name: "class range", err: &seg.ClassRangeError{Label: 9, Classes: 3}, want: ErrClassRange},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := translateError(tt.err)
				assert.ErrorIs(t, got, tt.want)
				// Wrapping keeps the domain error reachable.
				assert.ErrorIs(t, got, tt.err)
			})
		}
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		cause := volume.NewShapeMismatchError([]int{2, 3}, []int{3, 3})
		got := translateError(fmt.Errorf("remap: %w", cause))

		var sm *ErrShapeMismatch
		require.ErrorAs(t, got, &sm)
		assert.Equal(t, []int{2, 3}, sm.Want)
		assert.Equal(t, []int{3, 3}, sm.Got)

		var inner *volume.ShapeMismatchError
		assert.ErrorAs(t, got, &inner)
	})

	t.Run("Passthrough", func(t *testing.T) {
		err := fmt.Errorf("%w: got 4", seg.ErrSpatialDims)
		assert.Same(t, err, translateError(err))

		plain := errors.New("something else")
		assert.Same(t, plain, translateError(plain))
	})
}

func TestErrInvalidValueType(t *testing.T) {
	err := &ErrInvalidValueType{Key: "boxes", Want: "[]seg.Box", Got: "oops"}
	assert.Equal(t, `record value "boxes" is string, expected []seg.Box`, err.Error())

	err = &ErrInvalidValueType{Key: "seg", Want: "*volume.Volume[uint8]", Got: nil}
	assert.Contains(t, err.Error(), "<nil>")
}

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector

	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())

	mc.RecordApply("pop_keys", 10*time.Millisecond, nil)
	mc.RecordApply("box_to_seg", 20*time.Millisecond, errors.New("boom"))

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.ApplyCount)
	assert.Equal(t, int64(1), stats.ApplyErrors)
	assert.Equal(t, (15 * time.Millisecond).Nanoseconds(), stats.ApplyAvgNanos)
}

func TestOptions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		o := applyOptions(nil)
		assert.False(t, o.grad)
		assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
		require.NotNil(t, o.logger)
		assert.False(t, o.logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("WithGrad", func(t *testing.T) {
		o := applyOptions([]Option{WithGrad(true)})
		assert.True(t, o.grad)
	})

	t.Run("WithMetricsCollector", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		o := applyOptions([]Option{WithMetricsCollector(mc)})
		assert.Same(t, mc, o.metricsCollector)

		o = applyOptions([]Option{WithMetricsCollector(nil)})
		assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
	})

	t.Run("WithLogger", func(t *testing.T) {
		l := NewTextLogger(slog.LevelDebug)
		o := applyOptions([]Option{WithLogger(l)})
		assert.Same(t, l, o.logger)

		o = applyOptions([]Option{WithLogger(nil)})
		require.NotNil(t, o.logger)
		assert.False(t, o.logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("WithLogLevel", func(t *testing.T) {
		o := applyOptions([]Option{WithLogLevel(slog.LevelDebug)})
		require.NotNil(t, o.logger)
		assert.True(t, o.logger.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("NilOptionIgnored", func(t *testing.T) {
		o := applyOptions([]Option{nil, WithGrad(true)})
		assert.True(t, o.grad)
	})
}

func TestLogger(t *testing.T) {
	newBufLogger := func(buf *bytes.Buffer) *Logger {
		return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	t.Run("LogApplySuccess", func(t *testing.T) {
		var buf bytes.Buffer
		l := newBufLogger(&buf)

		l.LogApply("pop_keys", time.Millisecond, nil)

		out := buf.String()
		assert.Contains(t, out, "transform applied")
		assert.Contains(t, out, "transform=pop_keys")
	})

	t.Run("LogApplyError", func(t *testing.T) {
		var buf bytes.Buffer
		l := newBufLogger(&buf)

		l.LogApply("box_to_seg", time.Millisecond, errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "transform failed")
		assert.Contains(t, out, "transform=box_to_seg")
		assert.Contains(t, out, "boom")
	})

	t.Run("WithFields", func(t *testing.T) {
		var buf bytes.Buffer
		l := newBufLogger(&buf).WithTransform("seg_to_box").WithKey("seg").WithCount(3)

		l.Info("decoded")

		out := buf.String()
		assert.Contains(t, out, "transform=seg_to_box")
		assert.Contains(t, out, "key=seg")
		assert.Contains(t, out, "count=3")
	})

	t.Run("Noop", func(t *testing.T) {
		l := NoopLogger()
		l.LogApply("pop_keys", time.Millisecond, errors.New("boom")) // must not panic
		assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	})
}

func TestTransformIdentity(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{name: "pop_keys", tr: PopKeys(record.Keys{"a"})},
		{name: "filter_keys", tr: FilterKeys(record.Keys{"a"})},
		{name: "box_to_seg", tr: BoxToSeg[uint8]("boxes", "seg", []int{4, 4})},
		{name: "seg_to_box", tr: SegToBox[uint8]("seg", "boxes", 2)},
		{name: "instance_to_semantic", tr: InstanceToSemantic[uint8]("seg", "sem", []uint8{1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tr.Name())
			assert.False(t, tt.tr.Grad())
		})
	}

	t.Run("WithGrad", func(t *testing.T) {
		tr := PopKeys(record.Keys{"a"}, WithGrad(true))
		assert.True(t, tr.Grad())
	})

	t.Run("Adapters", func(t *testing.T) {
		ms := NewMapToSeq([]string{"a"}, WithGrad(true))
		assert.Equal(t, "map_to_seq", ms.Name())
		assert.True(t, ms.Grad())

		sm := NewSeqToMap([]string{"a"})
		assert.Equal(t, "seq_to_map", sm.Name())
		assert.False(t, sm.Grad())
	})
}

func TestTransformConcurrency(t *testing.T) {
	var mc BasicMetricsCollector

	tr := BoxToSeg[uint8]("boxes", "seg", []int{8, 8}, WithMetricsCollector(&mc))
	r := record.Record{"boxes": []seg.Box{{0, 0, 3, 3}, {4, 4, 7, 7}}}

	const (
		workers = 8
		rounds  = 50
	)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for range rounds {
				out, err := tr.Apply(r)
				if err != nil {
					return err
				}
				vol := out["seg"].(*volume.Volume[uint8])
				if got := vol.At(0, 0); got != 1 {
					return fmt.Errorf("voxel (0,0) = %d, want 1", got)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(workers*rounds), mc.GetStats().ApplyCount)
}

func TestTransformInstrumentation(t *testing.T) {
	var mc BasicMetricsCollector
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	tr := PopKeys(record.Keys{"drop"},
		WithMetricsCollector(&mc),
		WithLogger(logger),
	)

	_, err := tr.Apply(record.Record{"drop": 1, "keep": 2})
	require.NoError(t, err)

	_, err = tr.Apply(record.Record{"keep": 2})
	require.ErrorIs(t, err, ErrKeyNotFound)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.ApplyCount)
	assert.Equal(t, int64(1), stats.ApplyErrors)

	out := buf.String()
	assert.Contains(t, out, "transform applied")
	assert.Contains(t, out, "transform failed")
	assert.Contains(t, out, "transform=pop_keys")
}
