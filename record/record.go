package record

// Record is a string-keyed collection of pipeline values.
//
// Values are opaque to this package; typically they hold volumes, box
// lists and assorted sample metadata travelling between pipeline stages.
type Record map[string]any

// Clone creates a shallow copy of the record: a fresh map sharing the
// same values. Values are arbitrary and are not copied.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}
