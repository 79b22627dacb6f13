package tomlconf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type serverSection struct {
	Host    string        `toml:"host"`
	Port    int           `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
}

type databaseSection struct {
	URL string `toml:"url"`
}

type appConfig struct {
	Name     string          `toml:"name"`
	Debug    bool            `toml:"debug"`
	Server   serverSection   `toml:"server"`
	Database databaseSection `toml:"database"`
	Tags     []string        `toml:"tags"`
}

// ── Decode ────────────────────────────────────────────────────────────────────

// TestDecode_TypedRecord verifies mapping a parsed tree onto a fixed,
// typed struct via toml tags.
func TestDecode_TypedRecord(t *testing.T) {
	tree, err := ParseString(`
name = "app"
debug = true
tags = ["web", "api"]

[server]
host = "0.0.0.0"
port = 8080
timeout = "30s"

[database]
url = "postgres://localhost:5432/app"
`)
	require.NoError(t, err)

	var cfg appConfig
	require.NoError(t, tree.Decode(&cfg))

	assert.Equal(t, "app", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"web", "api"}, cfg.Tags)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "postgres://localhost:5432/app", cfg.Database.URL)
}

// TestDecode_WeakTyping verifies that numeric strings (as produced by
// environment overrides) convert into integer fields.
func TestDecode_WeakTyping(t *testing.T) {
	tree := Tree{"server": Tree{"port": "9090"}}

	var cfg appConfig
	require.NoError(t, tree.Decode(&cfg))
	assert.Equal(t, 9090, cfg.Server.Port)
}

// TestDecode_TypeMismatch verifies that an inconvertible value is a real
// decode error, not a silently skipped field.
func TestDecode_TypeMismatch(t *testing.T) {
	tree := Tree{"server": Tree{"port": "not-a-number"}}

	var cfg appConfig
	err := tree.Decode(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

// TestDecode_PartialTree verifies that absent sections leave the target's
// existing values alone.
func TestDecode_PartialTree(t *testing.T) {
	tree := Tree{"name": "patched"}

	cfg := appConfig{Name: "orig", Server: serverSection{Port: 1234}}
	require.NoError(t, tree.Decode(&cfg))

	assert.Equal(t, "patched", cfg.Name)
	assert.Equal(t, 1234, cfg.Server.Port)
}
