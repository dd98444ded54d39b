package config

import (
	"fmt"
	"slices"
	"strings"
)

// CoercionError records a property value that could not be converted to the
// property's type. The default was used instead.
type CoercionError struct {
	Property string
	Raw      string
	Reason   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Raw, e.Property, e.Reason)
}

// RuleState is the value of a per-rule toggle property.
type RuleState int

const (
	RuleStateDefault RuleState = iota
	RuleStateEnabled
	RuleStateDisabled
)

// Snapshot holds the resolved properties for one file. It is immutable once
// built and safe to share between the rules processing that file.
type Snapshot struct {
	values   map[string]Value
	raw      map[string]string
	warnings []*CoercionError
}

// NewSnapshot resolves the given properties from a raw key/value map. Keys
// not mentioned in raw take the property default. Raw values that fail to
// coerce also fall back to the default and are recorded as warnings.
func NewSnapshot(props []Property, raw map[string]string) *Snapshot {
	s := &Snapshot{
		values: make(map[string]Value, len(props)),
		raw:    make(map[string]string, len(raw)),
	}
	for k, v := range raw {
		s.raw[strings.ToLower(k)] = v
	}

	for _, p := range props {
		if _, done := s.values[p.Name]; done {
			continue
		}
		text, ok := s.raw[p.Name]
		if !ok {
			s.values[p.Name] = p.DefaultValue()
			continue
		}
		v, err := p.Parse(text)
		if err != nil {
			s.warnings = append(s.warnings, &CoercionError{Property: p.Name, Raw: text, Reason: err.Error()})
			v = p.DefaultValue()
		}
		s.values[p.Name] = v
	}

	slices.SortFunc(s.warnings, func(a, b *CoercionError) int {
		return strings.Compare(a.Property, b.Property)
	})
	return s
}

// Get returns the resolved value of p. A property the snapshot was not built
// with resolves to its default.
func (s *Snapshot) Get(p Property) Value {
	if s != nil {
		if v, ok := s.values[p.Name]; ok {
			return v
		}
	}
	return p.DefaultValue()
}

// Int returns an integer property; ok is false when the property is unset.
func (s *Snapshot) Int(p Property) (int, bool) {
	v := s.Get(p)
	return v.Int, !v.Unset
}

// Bool returns a boolean property; ok is false when the property is unset.
func (s *Snapshot) Bool(p Property) (bool, bool) {
	v := s.Get(p)
	return v.Bool, !v.Unset
}

// Enum returns an enum or indent style property.
func (s *Snapshot) Enum(p Property) (string, bool) {
	v := s.Get(p)
	return v.Str, !v.Unset
}

// List returns a list property.
func (s *Snapshot) List(p Property) []string {
	v := s.Get(p)
	if v.Unset {
		return nil
	}
	return v.List
}

// Raw returns the unparsed value of any key.
func (s *Snapshot) Raw(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.raw[strings.ToLower(key)]
	return v, ok
}

// RuleState reads the "ktlint_<ruleset>_<rule>" toggle for a rule id of the
// form "ruleset:rule".
func (s *Snapshot) RuleState(ruleID string) RuleState {
	set, name, ok := strings.Cut(ruleID, ":")
	if !ok {
		set, name = "standard", ruleID
	}
	v, found := s.Raw("ktlint_" + set + "_" + name)
	if !found {
		return RuleStateDefault
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "enabled", "true":
		return RuleStateEnabled
	case "disabled", "false":
		return RuleStateDisabled
	default:
		return RuleStateDefault
	}
}

// Warnings returns the coercion failures recorded while resolving.
func (s *Snapshot) Warnings() []*CoercionError {
	if s == nil {
		return nil
	}
	return s.warnings
}
