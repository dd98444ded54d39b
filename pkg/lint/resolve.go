package lint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule holds the rule's metadata. Use RuleSet.Instantiate for a
	// visitable instance.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for violations from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// RuleSet is every registered rule in execution order with its run-level
// configuration. Per-file toggles are applied by ForFile.
type RuleSet struct {
	registry     *Registry
	rules        []ResolvedRule
	experimental bool
}

// ResolveRules orders the registry's rules and applies cfg to them. It fails
// when the ordering constraints cannot be satisfied.
func ResolveRules(registry *Registry, cfg *config.Config) (*RuleSet, error) {
	ordered, err := registry.Order()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	ruleCfgs := make(map[string]config.RuleConfig, len(cfg.Rules))
	for key, rc := range cfg.Rules {
		if id, ok := registry.Resolve(key); ok {
			ruleCfgs[id] = rc
		}
	}

	set := &RuleSet{registry: registry, experimental: cfg.Experimental}
	for _, rule := range ordered {
		set.rules = append(set.rules, resolveRule(registry, rule, cfg, ruleCfgs))
	}
	return set, nil
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(
	registry *Registry,
	rule Rule,
	cfg *config.Config,
	ruleCfgs map[string]config.RuleConfig,
) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if ruleCfg, ok := ruleCfgs[rule.ID()]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil && config.Severity(*ruleCfg.Severity).IsValid() {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// Explicit enable/disable from CLI.
	if containsRule(registry, cfg.EnableRules, rule.ID()) {
		rr.Enabled = true
	}
	if containsRule(registry, cfg.DisableRules, rule.ID()) {
		rr.Enabled = false
	}

	return rr
}

func containsRule(registry *Registry, keys []string, id string) bool {
	return slices.ContainsFunc(keys, func(key string) bool {
		resolved, ok := registry.Resolve(key)
		return ok && resolved == id
	})
}

// UnknownRules returns the keys in cfg that name no registered rule.
func UnknownRules(registry *Registry, cfg *config.Config) []string {
	var unknown []string
	check := func(key string) {
		if _, ok := registry.Resolve(key); !ok && !slices.Contains(unknown, key) {
			unknown = append(unknown, key)
		}
	}
	for key := range cfg.Rules {
		check(key)
	}
	for _, key := range cfg.EnableRules {
		check(key)
	}
	for _, key := range cfg.DisableRules {
		check(key)
	}
	slices.Sort(unknown)
	return unknown
}

// Rules returns every rule in execution order, enabled or not.
func (s *RuleSet) Rules() []ResolvedRule {
	return s.rules
}

// Enabled returns the run-level enabled rules in execution order.
// Experimental rules count only when experimental rules are on.
func (s *RuleSet) Enabled() []ResolvedRule {
	var enabled []ResolvedRule
	for _, rr := range s.rules {
		if rr.Enabled && (!rr.Rule.Experimental() || s.experimental) {
			enabled = append(enabled, rr)
		}
	}
	return enabled
}

// Properties returns the core properties plus every property declared by
// a rule in the set, deduplicated by name.
func (s *RuleSet) Properties() []config.Property {
	props := config.CoreProperties()
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		seen[p.Name] = true
	}
	for _, rr := range s.rules {
		for _, p := range rr.Rule.Properties() {
			if !seen[p.Name] {
				seen[p.Name] = true
				props = append(props, p)
			}
		}
	}
	return props
}

// ForFile applies the file's editorconfig toggles and each rule's
// applicability, then drops rules whose required dependencies did not
// survive. Execution order is preserved.
func (s *RuleSet) ForFile(file File, props *config.Snapshot) []ResolvedRule {
	experimental := s.experimental
	if v, ok := props.Enum(config.ExperimentalProperty); ok {
		experimental = experimental || v == "enabled"
	}
	disabled := props.List(config.DisabledRulesProperty)

	active := make(map[string]bool, len(s.rules))
	for _, rr := range s.rules {
		enabled := rr.Enabled
		if state := props.RuleState(rr.Rule.ID()); state != config.RuleStateDefault {
			enabled = state == config.RuleStateEnabled
		}
		if containsRule(s.registry, disabled, rr.Rule.ID()) {
			enabled = false
		}
		if rr.Rule.Experimental() && !experimental {
			enabled = false
		}
		active[rr.Rule.ID()] = enabled && rr.Rule.AppliesTo(file)
	}

	// A rule requiring a disabled rule is disabled too; repeat until stable.
	for changed := true; changed; {
		changed = false
		for _, rr := range s.rules {
			if !active[rr.Rule.ID()] {
				continue
			}
			for _, c := range rr.Rule.Constraints() {
				if c.Kind == RunAfter && c.Required && !active[c.RuleID] {
					active[rr.Rule.ID()] = false
					changed = true
					break
				}
			}
		}
	}

	var out []ResolvedRule
	for _, rr := range s.rules {
		if active[rr.Rule.ID()] {
			out = append(out, rr)
		}
	}
	return out
}

// Instantiate creates a fresh, visitable instance of the resolved rule.
func (s *RuleSet) Instantiate(rr ResolvedRule) (Rule, error) {
	rule, ok := s.registry.New(rr.Rule.ID())
	if !ok {
		return nil, fmt.Errorf("rule %s is not registered", rr.Rule.ID())
	}
	return rule, nil
}

// String lists the enabled rule ids in order, for logging.
func (s *RuleSet) String() string {
	var ids []string
	for _, rr := range s.Enabled() {
		ids = append(ids, rr.Rule.ID())
	}
	return strings.Join(ids, ",")
}
