package record

// ToSeq extracts the values of keys from r in order, turning a record
// into the positional form consumed by sequence-based pipeline stages.
// Fails with KeyNotFoundError on the first absent key.
func ToSeq(r Record, keys ...string) ([]any, error) {
	out := make([]any, len(keys))
	for i, k := range keys {
		v, ok := r[k]
		if !ok {
			return nil, &KeyNotFoundError{Key: k}
		}
		out[i] = v
	}
	return out, nil
}

// FromSeq zips keys with seq positionally into a record, inverting ToSeq
// for the same key ordering. Fails with ArityMismatchError when the
// lengths differ. Keys should be unique; a duplicated key keeps its last
// value.
func FromSeq(seq []any, keys ...string) (Record, error) {
	if len(seq) != len(keys) {
		return nil, &ArityMismatchError{Keys: len(keys), Values: len(seq)}
	}

	r := make(Record, len(keys))
	for i, k := range keys {
		r[k] = seq[i]
	}
	return r, nil
}
