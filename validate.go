// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tomlconf

import (
	"errors"
	"fmt"
	"slices"
)

// Validator is implemented by typed configuration structs that can check
// their own invariants. Loader.Bind calls Validate on the bound struct
// after all sources have been layered.
type Validator interface {
	Validate() error
}

// Required checks that every given dotted path resolves to a value in the
// tree. All missing paths are reported, joined into a single error that
// wraps ErrRequired per path.
func Required(t Tree, paths ...string) error {
	var err error
	for _, path := range paths {
		if !t.Has(path) {
			err = errors.Join(err, fmt.Errorf("%q: %w", path, ErrRequired))
		}
	}
	return err
}

// IntRange checks that the integer at path lies within [min, max]
// inclusive. A missing key or a non-integer value is an error as well.
func IntRange(t Tree, path string, min, max int64) error {
	n, err := t.Int(path)
	if err != nil {
		return err
	}
	if n < min || n > max {
		return fmt.Errorf("%q: %d not in [%d, %d]: %w", path, n, min, max, ErrOutOfRange)
	}
	return nil
}

// Port checks that the value at path is a valid non-privileged TCP port
// (1024–65535).
func Port(t Tree, path string) error {
	return IntRange(t, path, 1024, 65535)
}

// OneOf checks that the string at path is one of the allowed values.
func OneOf(t Tree, path string, allowed ...string) error {
	s, err := t.String(path)
	if err != nil {
		return err
	}
	if !slices.Contains(allowed, s) {
		return fmt.Errorf("%q: %q not in %v: %w", path, s, allowed, ErrNotAllowed)
	}
	return nil
}
