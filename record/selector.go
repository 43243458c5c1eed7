package record

// Selector chooses keys of a record for Pop and Filter.
//
// The two forms are Keys (an explicit list) and Predicate (a function
// over key names). They differ in one point only: an explicit key that is
// absent from the record is an error in strict contexts, while a
// predicate by construction only ever selects present keys.
type Selector interface {
	// resolve returns the selected keys present in r. In strict mode an
	// explicitly selected but absent key yields a KeyNotFoundError.
	resolve(r Record, strict bool) ([]string, error)
}

// Keys selects an explicit list of keys.
type Keys []string

func (k Keys) resolve(r Record, strict bool) ([]string, error) {
	out := make([]string, 0, len(k))
	for _, key := range k {
		if _, ok := r[key]; !ok {
			if strict {
				return nil, &KeyNotFoundError{Key: key}
			}
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

// Predicate selects every key it reports true for.
type Predicate func(key string) bool

func (p Predicate) resolve(r Record, _ bool) ([]string, error) {
	out := make([]string, 0, len(r))
	for key := range r {
		if p(key) {
			out = append(out, key)
		}
	}
	return out, nil
}

// Pop splits r into the entries selected by sel (removed) and everything
// else (remaining). The two results partition r exactly; r itself is not
// mutated.
//
// With a Keys selector, selecting an absent key fails with
// KeyNotFoundError. A Predicate selector cannot fail.
func Pop(r Record, sel Selector) (remaining, removed Record, err error) {
	selected, err := sel.resolve(r, true)
	if err != nil {
		return nil, nil, err
	}

	removed = make(Record, len(selected))
	for _, k := range selected {
		removed[k] = r[k]
	}

	remaining = make(Record, len(r)-len(removed))
	for k, v := range r {
		if _, ok := removed[k]; !ok {
			remaining[k] = v
		}
	}

	return remaining, removed, nil
}

// Filter keeps exactly the entries selected by sel (retained) and removes
// everything else. It is Pop applied to the selector's complement, so an
// absent explicit key is silently ignored rather than an error. r is not
// mutated.
func Filter(r Record, sel Selector) (retained, removed Record) {
	selected, _ := sel.resolve(r, false) // non-strict resolve cannot fail

	retained = make(Record, len(selected))
	for _, k := range selected {
		retained[k] = r[k]
	}

	removed = make(Record, len(r)-len(retained))
	for k, v := range r {
		if _, ok := retained[k]; !ok {
			removed[k] = v
		}
	}

	return retained, removed
}
