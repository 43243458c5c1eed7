// Package record provides the keyed-record operations used to reshape
// pipeline samples: splitting a record by key (Pop, Filter) and converting
// between records and ordered sequences (ToSeq, FromSeq).
//
// A Record is a plain map from string keys to arbitrary values. All
// operations are pure: inputs are never mutated, results are fresh maps.
// Key selection is expressed as a Selector, either an explicit key list
// (Keys) or a predicate over key names (Predicate); the two differ only in
// how absent keys are treated.
package record
