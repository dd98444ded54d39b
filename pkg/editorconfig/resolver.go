// Package editorconfig resolves per-file style properties.
//
// Three layers are merged with koanf, later layers winning: the declared
// property defaults, the .editorconfig sections matching the file (nearest
// directory first, as editorconfig-core applies them) and the explicit
// overrides passed to the resolver. The merged raw values are then coerced
// into a config.Snapshot.
package editorconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/yaklabco/kotlint/pkg/config"
)

// DefaultConfigName is the file name searched for in each directory.
const DefaultConfigName = ".editorconfig"

// Resolver computes configuration snapshots. It is safe for concurrent use.
type Resolver struct {
	overrides  map[string]string
	configName string
	disabled   bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfigName changes the editorconfig file name.
func WithConfigName(name string) Option {
	return func(r *Resolver) {
		r.configName = name
	}
}

// WithoutFiles skips .editorconfig lookup so only defaults and overrides
// apply.
func WithoutFiles() Option {
	return func(r *Resolver) {
		r.disabled = true
	}
}

// NewResolver creates a resolver. Overrides win over every .editorconfig file.
func NewResolver(overrides map[string]string, opts ...Option) *Resolver {
	r := &Resolver{
		overrides:  make(map[string]string, len(overrides)),
		configName: DefaultConfigName,
	}
	for k, v := range overrides {
		r.overrides[strings.ToLower(k)] = v
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveFile resolves props for the file at path. The path does not have
// to exist; only its directory and name are used for section matching.
func (r *Resolver) ResolveFile(path string, props []config.Property) (*config.Snapshot, error) {
	raw, err := r.rawValues(path, props)
	if err != nil {
		return nil, err
	}
	return config.NewSnapshot(props, raw), nil
}

// Resolve resolves a single property for a file.
func (r *Resolver) Resolve(prop config.Property, path string) (config.Value, error) {
	snap, err := r.ResolveFile(path, []config.Property{prop})
	if err != nil {
		return config.Value{}, err
	}
	return snap.Get(prop), nil
}

func (r *Resolver) rawValues(path string, props []config.Property) (map[string]string, error) {
	k := koanf.New(".")

	defaults := make(map[string]any, len(props))
	for _, p := range props {
		defaults[p.Name] = p.Default
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load property defaults: %w", err)
	}

	if !r.disabled && path != "" {
		fileValues, err := r.fileValues(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(fileValues, "."), nil); err != nil {
			return nil, fmt.Errorf("load editorconfig values: %w", err)
		}
	}

	overrides := make(map[string]any, len(r.overrides))
	for key, v := range r.overrides {
		overrides[key] = v
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, fmt.Errorf("load editorconfig overrides: %w", err)
	}

	raw := make(map[string]string)
	for key, v := range k.All() {
		raw[key] = fmt.Sprint(v)
	}
	return raw, nil
}

func (r *Resolver) fileValues(path string) (map[string]any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	def, err := editorconfig.GetDefinitionForFilenameWithConfigname(abs, r.configName)
	if err != nil {
		return nil, fmt.Errorf("read %s for %s: %w", r.configName, path, err)
	}

	values := make(map[string]any, len(def.Raw))
	for key, v := range def.Raw {
		values[strings.ToLower(key)] = v
	}
	return values, nil
}
