// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tomlconf

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/tomlconf/internal/maps"
)

// Merge combines two configuration trees into a new one. The result
// starts from a deep copy of base; for every key in override, if both the
// existing and incoming values are tables they merge recursively,
// otherwise the override value wins. Neither input is modified.
//
// Merge is right-biased on scalar conflicts and silently overwrites a
// table with a non-table value (and the reverse). Because of that
// overwrite, Merge is not associative when such a conflict occurs; use
// MergeStrict to surface conflicts instead.
func Merge(base, override Tree) Tree {
	out := maps.Copy(base.Raw())
	maps.Merge(out, override.Raw())
	return Tree(out)
}

// MergeStrict combines two trees like Merge but returns ErrMergeConflict
// wrapped with the offending dotted path when a table and a non-table
// value meet at the same key. On error the returned tree is nil and
// neither input has been modified.
func MergeStrict(base, override Tree) (Tree, error) {
	out := maps.Copy(base.Raw())
	if err := maps.MergeStrict(out, override.Raw()); err != nil {
		if errors.Is(err, maps.ErrTypeConflict) {
			return nil, fmt.Errorf("%v: %w", err, ErrMergeConflict)
		}
		return nil, err
	}
	return Tree(out), nil
}
