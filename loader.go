package tomlconf

import (
	"errors"
	"fmt"
	"reflect"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
)

// Loader assembles a configuration from multiple sources. Sources are
// layered in the order the WithX calls are made, later sources override
// earlier ones, so the conventional order is defaults first, then files,
// then the environment:
//
//	cfg, err := tomlconf.NewLoader().
//		WithDefaults(defaults).
//		WithFile("app.toml").
//		WithEnv("MYAPP_").
//		Load()
//
// Source errors accumulate; Load and Bind report all of them at once.
type Loader struct {
	trees []Tree
	log   zerolog.Logger
	err   error
}

// NewLoader returns an empty Loader. Logging is discarded unless a logger
// is attached with WithLogger.
func NewLoader() *Loader {
	return &Loader{
		trees: make([]Tree, 0, 4),
		log:   zerolog.Nop(),
	}
}

// WithLogger attaches a logger used for debug output about the layered
// sources.
func (l *Loader) WithLogger(log zerolog.Logger) *Loader {
	l.log = log
	return l
}

// WithDefaults layers a hand-built tree of default values.
func (l *Loader) WithDefaults(t Tree) *Loader {
	l.trees = append(l.trees, t.Copy())
	return l
}

// WithFile layers the TOML file at path.
func (l *Loader) WithFile(path string) *Loader {
	t, err := LoadFile(path)
	if err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}
	l.trees = append(l.trees, t)
	return l
}

// WithString layers a TOML document held in a string.
func (l *Loader) WithString(s string) *Loader {
	t, err := ParseString(s)
	if err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}
	l.trees = append(l.trees, t)
	return l
}

// WithEnv layers environment variables carrying the given prefix, mapped
// to dotted paths as described on EnvOverride.
func (l *Loader) WithEnv(prefix string) *Loader {
	t, err := EnvOverride(Tree{}, prefix)
	if err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}
	l.trees = append(l.trees, t)
	return l
}

// Load merges all layered sources into a single tree, later layers
// overriding earlier ones with Merge semantics.
func (l *Loader) Load() (Tree, error) {
	if l.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", l.err)
	}

	config := Tree{}
	for _, t := range l.trees {
		config = Merge(config, t)
	}

	l.log.Debug().Int("layers", len(l.trees)).Msg("merged configuration sources")
	return config, nil
}

// Bind loads the merged tree and binds it onto the struct pointed to by
// v. Three typed layers are assembled and merged in priority order:
// environment variables (via `env` tags), then the merged tree (via
// `toml` tags), then whatever defaults the caller pre-set on v. If the
// target implements Validator, the final struct is validated.
func (l *Loader) Bind(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a non-nil struct pointer, got %T", v)
	}

	tree, err := l.Load()
	if err != nil {
		return err
	}

	envCfg := reflect.New(rv.Elem().Type()).Interface()
	if err := ApplyEnv(envCfg); err != nil {
		return err
	}

	fileCfg := reflect.New(rv.Elem().Type()).Interface()
	if err := tree.Decode(fileCfg); err != nil {
		return err
	}

	// First non-zero field wins, so sources go highest priority first.
	out := reflect.New(rv.Elem().Type())
	for _, src := range []any{envCfg, fileCfg, v} {
		if err := mergo.Merge(out.Interface(), src); err != nil {
			return fmt.Errorf("error merging configs: %w", err)
		}
	}
	rv.Elem().Set(out.Elem())

	if validator, ok := v.(Validator); ok {
		return validator.Validate()
	}
	return nil
}
