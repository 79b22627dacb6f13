// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tomlconf

import (
	"fmt"
	"io"

	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Parse parses TOML data into a configuration tree.
func Parse(data []byte) (Tree, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error parsing toml: %w", err)
	}
	return Tree(k.Raw()), nil
}

// ParseString parses a TOML document held in a string.
func ParseString(s string) (Tree, error) {
	return Parse([]byte(s))
}

// ParseReader reads r to completion and parses the contents as TOML.
// Closing r remains the caller's responsibility.
func ParseReader(r io.Reader) (Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading toml source: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and parses the TOML file at path.
func LoadFile(path string) (Tree, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error loading config file %q: %w", path, err)
	}
	return Tree(k.Raw()), nil
}
