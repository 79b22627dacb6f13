// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package maps implements the recursive operations on raw configuration
// maps that back the public Tree API: deep copy and deep merge, in plain
// and conflict-reporting variants.
package maps

import (
	"errors"
	"fmt"
)

// ErrTypeConflict is reported by MergeStrict when a nested table and a
// non-table value meet at the same key.
var ErrTypeConflict = errors.New("table/value type conflict")

// AsMap reports whether v is a nested configuration table and returns it
// as a raw map. It accepts both map[string]any and named map types with
// that underlying shape (the public Tree type).
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case interface{ Raw() map[string]any }:
		return m.Raw(), true
	}
	return nil, false
}

// Copy returns a deep copy of m. Nested tables are copied recursively,
// slices are copied element-wise; scalar values are shared as-is.
func Copy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	if m, ok := AsMap(v); ok {
		return Copy(m)
	}
	if s, ok := v.([]any); ok {
		cp := make([]any, len(s))
		for i, e := range s {
			cp[i] = copyValue(e)
		}
		return cp
	}
	return v
}

// Merge merges src into dst in place. Keys present in both sides with
// table values on both sides merge recursively; every other key is
// overwritten with a deep copy of the src value. Right bias on scalar
// conflicts: src wins.
func Merge(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := AsMap(v); ok {
			if dv, ok := AsMap(dst[k]); ok {
				Merge(dv, sv)
				continue
			}
		}
		dst[k] = copyValue(v)
	}
}

// MergeStrict behaves like Merge but refuses to overwrite a table with a
// non-table value or the reverse, returning ErrTypeConflict wrapped with
// the dotted path of the first offending key.
func MergeStrict(dst, src map[string]any) error {
	return mergeStrict(dst, src, "")
}

func mergeStrict(dst, src map[string]any, prefix string) error {
	for k, v := range src {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		sv, srcIsMap := AsMap(v)
		dv, dstIsMap := AsMap(dst[k])

		if srcIsMap && dstIsMap {
			if err := mergeStrict(dv, sv, path); err != nil {
				return err
			}
			continue
		}

		if _, exists := dst[k]; exists && srcIsMap != dstIsMap {
			return fmt.Errorf("%q: %w", path, ErrTypeConflict)
		}

		dst[k] = copyValue(v)
	}
	return nil
}
