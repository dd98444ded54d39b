package configloader

import (
	"maps"

	"github.com/yaklabco/kotlint/pkg/config"
)

// merge combines two configurations, with override taking precedence.
//   - Scalars: a non-zero override value wins.
//   - Booleans: only true propagates, so a file cannot unset a CLI flag.
//   - Maps: merged key by key; rule entries merge field by field.
//   - Slices: a non-nil override replaces base entirely.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.CodeStyle != "" {
		result.CodeStyle = override.CodeStyle
	}
	if override.Reporter != "" {
		result.Reporter = override.Reporter
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Experimental = base.Experimental || override.Experimental
	result.Format = base.Format || override.Format
	result.DryRun = base.DryRun || override.DryRun
	result.Relative = base.Relative || override.Relative
	result.Strict = base.Strict || override.Strict

	result.Rules = mergeRules(base.Rules, override.Rules)
	result.EditorConfig = mergeStrings(base.EditorConfig, override.EditorConfig)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

func mergeStrings(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeRules performs a deep merge of rule configurations.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

// mergeRuleConfig merges individual rule configurations.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
