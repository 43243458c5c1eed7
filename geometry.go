package voxgo

import (
	"fmt"
	"time"

	"github.com/hupe1980/voxgo/record"
	"github.com/hupe1980/voxgo/seg"
	"github.com/hupe1980/voxgo/volume"
)

// volumeAt type-asserts the value under key to a non-nil volume of element
// type T.
func volumeAt[T volume.Label](r record.Record, key string) (*volume.Volume[T], error) {
	v, ok := r[key]
	if !ok {
		return nil, &record.KeyNotFoundError{Key: key}
	}
	vol, ok := v.(*volume.Volume[T])
	if !ok {
		return nil, &ErrInvalidValueType{Key: key, Want: fmt.Sprintf("%T", vol), Got: v}
	}
	if vol == nil {
		return nil, &ErrInvalidValueType{Key: key, Want: fmt.Sprintf("%T", vol), Got: nil}
	}
	return vol, nil
}

// BoxToSeg returns a transform that paints the []seg.Box under boxKey into
// a fresh instance segmentation volume of the given shape, stored under
// segKey. Box i is painted with label i+1 in input order, so later boxes
// overwrite earlier ones where they overlap.
//
// Apply fails with ErrKeyNotFound when boxKey is absent, ErrInvalidValueType
// when it does not hold a []seg.Box, and ErrInvalidBoxLength when a box has
// a coordinate count other than 4 or 6.
func BoxToSeg[T volume.Label](boxKey, segKey string, shape []int, optFns ...Option) Transform {
	return &boxToSeg[T]{
		base:   newBase("box_to_seg", optFns),
		boxKey: boxKey,
		segKey: segKey,
		shape:  append([]int(nil), shape...),
	}
}

type boxToSeg[T volume.Label] struct {
	base
	boxKey string
	segKey string
	shape  []int
}

// Apply implements Transform.
func (t *boxToSeg[T]) Apply(r record.Record) (record.Record, error) {
	start := time.Now()
	out, err := t.apply(r)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *boxToSeg[T]) apply(r record.Record) (record.Record, error) {
	v, ok := r[t.boxKey]
	if !ok {
		return nil, &record.KeyNotFoundError{Key: t.boxKey}
	}
	boxes, ok := v.([]seg.Box)
	if !ok {
		return nil, &ErrInvalidValueType{Key: t.boxKey, Want: "[]seg.Box", Got: v}
	}

	vol, err := seg.FromBoxes[T](boxes, t.shape...)
	if err != nil {
		return nil, err
	}

	out := r.Clone()
	out[t.segKey] = vol
	return out, nil
}

// SegToBox returns a transform that recovers the tightest axis-aligned box
// per instance label from the volume under segKey and stores the list under
// boxKey. Box i describes label i+1; spatialDims selects 2-D or 3-D boxes
// over the volume's trailing axes.
//
// Apply fails with ErrKeyNotFound when segKey is absent, ErrInvalidValueType
// when it does not hold a *volume.Volume[T], and ErrEmptyInstance when the
// labels present are not contiguous from 1.
func SegToBox[T volume.Label](segKey, boxKey string, spatialDims int, optFns ...Option) Transform {
	return &segToBox[T]{
		base:        newBase("seg_to_box", optFns),
		segKey:      segKey,
		boxKey:      boxKey,
		spatialDims: spatialDims,
	}
}

type segToBox[T volume.Label] struct {
	base
	segKey      string
	boxKey      string
	spatialDims int
}

// Apply implements Transform.
func (t *segToBox[T]) Apply(r record.Record) (record.Record, error) {
	start := time.Now()
	out, err := t.apply(r)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *segToBox[T]) apply(r record.Record) (record.Record, error) {
	vol, err := volumeAt[T](r, t.segKey)
	if err != nil {
		return nil, err
	}

	boxes, err := seg.ToBoxes(vol, t.spatialDims)
	if err != nil {
		return nil, err
	}

	out := r.Clone()
	out[t.boxKey] = boxes
	return out, nil
}

// InstanceToSemantic returns a transform that remaps the instance volume
// under segKey through a class table and stores the result under outKey:
// every voxel with instance label i becomes classes[i-1], background stays
// 0. Passing outKey == segKey replaces the instance volume in the output
// record; the input record still holds the original.
//
// Apply fails with ErrKeyNotFound when segKey is absent, ErrInvalidValueType
// when it does not hold a *volume.Volume[T], and ErrClassRange when a label
// exceeds the class table.
func InstanceToSemantic[T volume.Label](segKey, outKey string, classes []T, optFns ...Option) Transform {
	return &instanceToSemantic[T]{
		base:    newBase("instance_to_semantic", optFns),
		segKey:  segKey,
		outKey:  outKey,
		classes: append([]T(nil), classes...),
	}
}

type instanceToSemantic[T volume.Label] struct {
	base
	segKey  string
	outKey  string
	classes []T
}

// Apply implements Transform.
func (t *instanceToSemantic[T]) Apply(r record.Record) (record.Record, error) {
	start := time.Now()
	out, err := t.apply(r)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *instanceToSemantic[T]) apply(r record.Record) (record.Record, error) {
	vol, err := volumeAt[T](r, t.segKey)
	if err != nil {
		return nil, err
	}

	mapped, err := seg.InstanceToSemantic(vol, t.classes)
	if err != nil {
		return nil, err
	}

	out := r.Clone()
	out[t.outKey] = mapped
	return out, nil
}
