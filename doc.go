// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tomlconf provides TOML configuration loading, merging, and
// validation facilities.
//
// A configuration is a [Tree]: a mapping from string keys to scalars,
// arrays, and nested tables, obtained with [Parse], [ParseString],
// [ParseReader], or [LoadFile]. Trees combine with [Merge] (recursive on
// tables, right-biased on conflicts) and bind to typed structs with
// [Tree.Decode].
//
// Configuration is usually assembled from multiple sources with a
// [Loader], later sources overriding earlier ones:
//  1. Default values
//  2. TOML files
//  3. Environment variables
//
// The main entry points are [NewLoader] for layered loading, [NewWatcher]
// for reacting to file changes, and [WriteFile] for persisting a merged
// tree atomically.
package tomlconf

// keyDelim separates path segments in dotted key lookups ("server.port").
const keyDelim = "."
