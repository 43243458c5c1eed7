package record

import "fmt"

// KeyNotFoundError indicates a requested key absent from the record.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in record", e.Key)
}

// ArityMismatchError indicates a sequence whose length does not match its
// key ordering.
type ArityMismatchError struct {
	Keys   int
	Values int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch: %d keys for %d values", e.Keys, e.Values)
}
