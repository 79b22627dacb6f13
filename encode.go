package tomlconf

import (
	"fmt"

	"github.com/google/renameio/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// MarshalTOML renders the tree as a TOML document.
func (t Tree) MarshalTOML() ([]byte, error) {
	data, err := gotoml.Marshal(t.Copy().Raw())
	if err != nil {
		return nil, fmt.Errorf("error encoding tree to toml: %w", err)
	}
	return data, nil
}

// WriteFile writes the tree as TOML to path atomically and durably:
// renameio stages the content in a temp file, fsyncs it, and renames it
// into place, so readers never observe a partial write and the previous
// file survives a failed write intact.
func WriteFile(path string, t Tree) error {
	data, err := t.MarshalTOML()
	if err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("error creating pending config file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck // no-op after a successful replace

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("error writing pending config file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error replacing config file %q: %w", path, err)
	}
	return nil
}
