// Package configloader resolves the run configuration from the system,
// user and project config files, KOTLINT_* environment variables and CLI
// flags, then validates it against the registered rules.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/lint/rules"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory the project config search starts from.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It is loaded on
	// top of the discovered files.
	ExplicitPath string

	// IgnoreSystemConfig skips /etc/kotlint.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips $XDG_CONFIG_HOME/kotlint.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the upward .kotlint.yml search.
	IgnoreProjectConfig bool

	// IgnoreEnv skips KOTLINT_* environment variables.
	IgnoreEnv bool

	// Env looks up environment variables; nil means os.LookupEnv.
	Env LookupFunc

	// Registry validates rule ids; nil means lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags and takes highest
	// precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// ErrConfig marks configuration files and environment values that could
// not be read or parsed.
var ErrConfig = errors.New("invalid configuration")

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (KOTLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.kotlint.yml, upward search)
//  5. User config ($XDG_CONFIG_HOME/kotlint/config.yaml)
//  6. System config (/etc/kotlint/config.yaml)
//  7. The selected code style, then defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s config: %w", ErrConfig, layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, opts.Env); err != nil {
			return nil, fmt.Errorf("%w: load environment: %w", ErrConfig, err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		errs := make([]error, len(validation.Errors))
		for i := range validation.Errors {
			errs[i] = &validation.Errors[i]
		}
		return nil, errors.Join(errs...)
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	if pack := rules.PackByName(cfg.CodeStyle); pack != nil {
		pack.Apply(cfg)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalizeRuleKeys rewrites bare rule names ("no-semi") and aliases to
// qualified ids so later lookups see a single key per rule. Unknown keys
// are kept for Validate to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) > 0 {
		normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
		seen := make(map[string]string) // qualified id -> original key

		for _, key := range sortedKeys(cfg.Rules) {
			ruleCfg := cfg.Rules[key]
			id, ok := registry.Resolve(key)
			if !ok {
				normalized[key] = ruleCfg
				continue
			}
			if original, dup := seen[id]; dup {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; merging",
						original, key, id))
				ruleCfg = mergeRuleConfig(normalized[id], ruleCfg)
			}
			seen[id] = key
			normalized[id] = ruleCfg
		}
		cfg.Rules = normalized
	}

	cfg.EnableRules = normalizeIDs(cfg.EnableRules, registry)
	cfg.DisableRules = normalizeIDs(cfg.DisableRules, registry)
}

func normalizeIDs(ids []string, registry *lint.Registry) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, key := range ids {
		if id, ok := registry.Resolve(key); ok {
			out[i] = id
		} else {
			out[i] = key
		}
	}
	return out
}
