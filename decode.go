package tomlconf

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Decode maps the tree onto the struct pointed to by v, matching fields
// by their `toml` tags (falling back to field names). String values in
// time.ParseDuration format decode into time.Duration fields, and types
// implementing encoding.TextUnmarshaler are decoded through it. A value
// that cannot be converted to the target field type is a decode error,
// not a silently skipped field.
func (t Tree) Decode(v any) error {
	k := koanf.New(keyDelim)
	// Copy normalizes nested Tree values to plain maps for koanf. The
	// empty delim tells confmap the map is already nested.
	if err := k.Load(confmap.Provider(t.Copy().Raw(), ""), nil); err != nil {
		return fmt.Errorf("error loading tree for decode: %w", err)
	}

	conf := koanf.UnmarshalConf{
		Tag: "toml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Metadata:         nil,
			Result:           v,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", v, conf); err != nil {
		return fmt.Errorf("error decoding config into %T: %w", v, err)
	}
	return nil
}
