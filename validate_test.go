package tomlconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func validationTree(t *testing.T) Tree {
	t.Helper()
	tree, err := ParseString(`
env = "production"

[server]
host = "localhost"
port = 8080

[database]
url = "postgres://localhost:5432/app"
`)
	require.NoError(t, err)
	return tree
}

// ── Required ──────────────────────────────────────────────────────────────────

// TestRequired_AllPresent verifies that no error is returned when every
// path resolves.
func TestRequired_AllPresent(t *testing.T) {
	tree := validationTree(t)
	assert.NoError(t, Required(tree, "server.host", "server.port", "database.url"))
}

// TestRequired_ReportsEveryMissingPath verifies that all missing paths
// are reported at once, each wrapping ErrRequired.
func TestRequired_ReportsEveryMissingPath(t *testing.T) {
	tree := validationTree(t)
	err := Required(tree, "server.host", "server.tls.cert", "database.password")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, err.Error(), "server.tls.cert")
	assert.Contains(t, err.Error(), "database.password")
	assert.NotContains(t, err.Error(), "server.host")
}

// ── IntRange / Port ───────────────────────────────────────────────────────────

// TestIntRange_WithinBounds verifies inclusive bounds.
func TestIntRange_WithinBounds(t *testing.T) {
	tree := validationTree(t)
	assert.NoError(t, IntRange(tree, "server.port", 8080, 8080))
	assert.NoError(t, IntRange(tree, "server.port", 1, 65535))
}

// TestIntRange_OutOfBounds verifies the range failure wraps ErrOutOfRange
// and names the path.
func TestIntRange_OutOfBounds(t *testing.T) {
	tree := validationTree(t)
	err := IntRange(tree, "server.port", 9000, 9999)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "server.port")
}

// TestIntRange_MissingOrNonInteger verifies that missing keys and
// non-integer values are errors, not silent passes.
func TestIntRange_MissingOrNonInteger(t *testing.T) {
	tree := validationTree(t)

	assert.ErrorIs(t, IntRange(tree, "server.absent", 0, 10), ErrKeyNotFound)
	assert.ErrorIs(t, IntRange(tree, "server.host", 0, 10), ErrWrongType)
}

// TestPort_Boundaries verifies the non-privileged port range 1024–65535.
func TestPort_Boundaries(t *testing.T) {
	for port, valid := range map[int64]bool{
		1023:  false,
		1024:  true,
		8080:  true,
		65535: true,
		65536: false,
	} {
		tree := Tree{"server": Tree{"port": port}}
		err := Port(tree, "server.port")
		if valid {
			assert.NoError(t, err, "port %d", port)
		} else {
			assert.ErrorIs(t, err, ErrOutOfRange, "port %d", port)
		}
	}
}

// ── OneOf ─────────────────────────────────────────────────────────────────────

// TestOneOf_Allowed verifies membership in the allowed set.
func TestOneOf_Allowed(t *testing.T) {
	tree := validationTree(t)
	assert.NoError(t, OneOf(tree, "env", "development", "staging", "production"))
}

// TestOneOf_NotAllowed verifies the failure wraps ErrNotAllowed and names
// both the path and the offending value.
func TestOneOf_NotAllowed(t *testing.T) {
	tree := validationTree(t)
	err := OneOf(tree, "env", "development", "staging")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAllowed)
	assert.Contains(t, err.Error(), "production")
}

// TestOneOf_MissingKey verifies that a missing key is reported as such.
func TestOneOf_MissingKey(t *testing.T) {
	tree := validationTree(t)
	assert.ErrorIs(t, OneOf(tree, "mode", "a", "b"), ErrKeyNotFound)
}
