package tomlconf

import "errors"

// Sentinel errors returned by tree accessors, merge, and validation rules.
// Callers should test with errors.Is; returned errors wrap these with the
// offending dotted path.
var (
	// ErrKeyNotFound indicates that a dotted path does not resolve to a
	// value in the tree.
	ErrKeyNotFound = errors.New("key not found")
	// ErrWrongType indicates that a path resolved to a value of a type
	// other than the one requested.
	ErrWrongType = errors.New("unexpected value type")
	// ErrMergeConflict indicates that MergeStrict found a table overridden
	// by a non-table value (or the reverse) at the same path.
	ErrMergeConflict = errors.New("merge type conflict")
	// ErrRequired indicates that a required key is absent.
	ErrRequired = errors.New("required key is missing")
	// ErrOutOfRange indicates that an integer value lies outside the
	// permitted range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrNotAllowed indicates that a value is not in the allowed set.
	ErrNotAllowed = errors.New("value not allowed")
)
