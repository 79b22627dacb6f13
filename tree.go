// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tomlconf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/tomlconf/internal/maps"
)

// Tree is a parsed configuration tree: a mapping from string keys to
// values. Values are one of string, int64, float64, bool, time.Time,
// []any, or a nested table (Tree or map[string]any). The root of a
// configuration is always a Tree; keys are unique within a table.
//
// Trees are plain maps and are not safe for concurrent mutation. Merge
// and Copy return fresh trees and never alias their inputs.
type Tree map[string]any

// Raw returns the tree as a raw map. Nested values are shared, not copied.
func (t Tree) Raw() map[string]any {
	return map[string]any(t)
}

// Copy returns a deep copy of the tree.
func (t Tree) Copy() Tree {
	return Tree(maps.Copy(t.Raw()))
}

// Lookup resolves a dotted path ("server.port") against the tree and
// reports whether a value exists there. Intermediate path elements must
// be tables.
func (t Tree) Lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := t.Raw()
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		m, ok := maps.AsMap(v)
		if !ok {
			return nil, false
		}
		cur = m
	}
	return nil, false
}

// Has reports whether a value exists at the dotted path.
func (t Tree) Has(path string) bool {
	_, ok := t.Lookup(path)
	return ok
}

// Keys returns the sorted top-level keys of the tree.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the string value at path.
func (t Tree) String(path string) (string, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return "", fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q: want string, got %T: %w", path, v, ErrWrongType)
	}
	return s, nil
}

// Int returns the integer value at path. TOML integers parse as int64;
// plain int values from hand-built trees are accepted as well.
func (t Tree) Int(path string) (int64, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return 0, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, fmt.Errorf("%q: want integer, got %T: %w", path, v, ErrWrongType)
}

// Float returns the float value at path. Integer values are widened.
func (t Tree) Float(path string) (float64, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return 0, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%q: want float, got %T: %w", path, v, ErrWrongType)
}

// Bool returns the boolean value at path.
func (t Tree) Bool(path string) (bool, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return false, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%q: want bool, got %T: %w", path, v, ErrWrongType)
	}
	return b, nil
}

// Time returns the datetime value at path. TOML offset date-times parse
// natively to time.Time.
func (t Tree) Time(path string) (time.Time, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return time.Time{}, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	ts, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%q: want datetime, got %T: %w", path, v, ErrWrongType)
	}
	return ts, nil
}

// Duration returns the duration at path. TOML has no duration literal, so
// the value must be a string in time.ParseDuration format ("30s", "1h").
func (t Tree) Duration(path string) (time.Duration, error) {
	s, err := t.String(path)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %v: %w", path, err, ErrWrongType)
	}
	return d, nil
}

// Strings returns the homogeneous string array at path.
func (t Tree) Strings(path string) ([]string, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	switch arr := v.(type) {
	case []string:
		out := make([]string, len(arr))
		copy(out, arr)
		return out, nil
	case []any:
		out := make([]string, len(arr))
		for i, e := range arr {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%q[%d]: want string, got %T: %w", path, i, e, ErrWrongType)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%q: want string array, got %T: %w", path, v, ErrWrongType)
}

// Table returns the nested table at path.
func (t Tree) Table(path string) (Tree, error) {
	v, ok := t.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrKeyNotFound)
	}
	m, ok := maps.AsMap(v)
	if !ok {
		return nil, fmt.Errorf("%q: want table, got %T: %w", path, v, ErrWrongType)
	}
	return Tree(m), nil
}
