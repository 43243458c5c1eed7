package voxgo

import (
	"time"

	"github.com/hupe1980/voxgo/record"
)

// MapToSeq converts records into positional sequences at the pipeline
// boundary, for stages that consume values by position instead of by key.
//
// Its Apply produces a []any rather than a record, so MapToSeq does not
// satisfy Transform; it still carries a name and the Grad flag.
type MapToSeq struct {
	base
	keys []string
}

// NewMapToSeq creates a boundary adapter that extracts the values of keys
// in order. Apply fails with ErrKeyNotFound on the first absent key.
func NewMapToSeq(keys []string, optFns ...Option) *MapToSeq {
	return &MapToSeq{
		base: newBase("map_to_seq", optFns),
		keys: append([]string(nil), keys...),
	}
}

// Keys returns the key order the adapter reads.
func (t *MapToSeq) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Apply extracts the configured keys from r in order. r is never mutated.
func (t *MapToSeq) Apply(r record.Record) ([]any, error) {
	start := time.Now()
	seq, err := record.ToSeq(r, t.keys...)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return seq, nil
}

// SeqToMap converts positional sequences back into records at the pipeline
// boundary, inverting MapToSeq for the same key order.
//
// Its Apply consumes a []any rather than a record, so SeqToMap does not
// satisfy Transform; it still carries a name and the Grad flag.
type SeqToMap struct {
	base
	keys []string
}

// NewSeqToMap creates a boundary adapter that zips keys with sequence
// values positionally. Apply fails with ErrArityMismatch when the lengths
// differ. Keys should be unique; a duplicated key keeps its last value.
func NewSeqToMap(keys []string, optFns ...Option) *SeqToMap {
	return &SeqToMap{
		base: newBase("seq_to_map", optFns),
		keys: append([]string(nil), keys...),
	}
}

// Keys returns the key order the adapter writes.
func (t *SeqToMap) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Apply zips the configured keys with seq into a fresh record.
func (t *SeqToMap) Apply(seq []any) (record.Record, error) {
	start := time.Now()
	r, err := record.FromSeq(seq, t.keys...)
	duration := time.Since(start)

	err = translateError(err)
	t.metrics.RecordApply(t.name, duration, err)
	t.logger.LogApply(t.name, duration, err)

	if err != nil {
		return nil, err
	}
	return r, nil
}
