// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tomlconf

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	kenv "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ApplyEnv populates cfg from environment variables using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags.
//
// Returns a wrapped error if env.Parse fails (e.g. a required variable is
// missing or a value cannot be converted to the target type).
func ApplyEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

// EnvOverride returns a new tree with environment variables patched over
// t. Variables are selected by prefix and mapped to dotted paths by
// stripping the prefix, lowercasing, and turning underscores into dots:
// with prefix "MYAPP_", MYAPP_SERVER_PORT=9090 overrides "server.port".
// Values arrive as strings; Decode's weak typing converts them when the
// tree is bound to a struct.
func EnvOverride(t Tree, prefix string) (Tree, error) {
	k := koanf.New(keyDelim)
	err := k.Load(kenv.Provider(prefix, keyDelim, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", keyDelim)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error reading environment overrides: %w", err)
	}
	return Merge(t, Tree(k.Raw())), nil
}
