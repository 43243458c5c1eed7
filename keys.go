package voxgo

import (
	"time"

	"github.com/hupe1980/voxgo/record"
)

// PopKeys returns a transform that removes the entries selected by sel and
// keeps everything else.
//
// With a record.Keys selector, selecting an absent key fails with
// ErrKeyNotFound. A record.Predicate selector cannot fail.
func PopKeys(sel record.Selector, optFns ...Option) Transform {
	return &popKeys{
		base: newBase("pop_keys", optFns),
		sel:  sel,
	}
}

type popKeys struct {
	base
	sel record.Selector
}

// Apply implements Transform.
func (t *popKeys) Apply(r record.Record) (record.Record, error) {
	start := time.Now()
	remaining, _, err := record.Pop(r, t.sel)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// FilterKeys returns a transform that keeps exactly the entries selected by
// sel and removes everything else.
//
// Unlike PopKeys, an explicitly selected key that is absent is silently
// ignored, so FilterKeys cannot fail.
func FilterKeys(sel record.Selector, optFns ...Option) Transform {
	return &filterKeys{
		base: newBase("filter_keys", optFns),
		sel:  sel,
	}
}

type filterKeys struct {
	base
	sel record.Selector
}

// Apply implements Transform.
func (t *filterKeys) Apply(r record.Record) (record.Record, error) {
	start := time.Now()
	retained, _ := record.Filter(r, t.sel)
	duration := time.Since(start)

	t.metrics.RecordApply(t.name, duration, nil)
	t.logger.LogApply(t.name, duration, nil)

	return retained, nil
}
