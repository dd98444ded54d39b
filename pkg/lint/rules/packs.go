package rules

import "github.com/yaklabco/kotlint/pkg/config"

// Pack describes a named code style: rule defaults plus the editorconfig
// properties that go with it. Packs are starting points for .kotlint.yml
// files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "ktlint_official").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig

	// EditorConfig holds property overrides applied to every file.
	EditorConfig map[string]string
}

// OfficialPack returns the ktlint official code style.
func OfficialPack() Pack {
	return Pack{
		Name:        "ktlint_official",
		Description: "Official style: 140 column limit, every standard rule as an error",
		Rules: map[string]config.RuleConfig{
			"standard:final-newline":               enabled("error"),
			"standard:no-consecutive-blank-lines":  enabled("error"),
			"standard:no-trailing-spaces":          enabled("error"),
			"standard:no-blank-line-before-rbrace": enabled("error"),
			"standard:no-semi":                     enabled("error"),
			"standard:comment-spacing":             enabled("error"),
			"standard:annotation-spacing":          enabled("error"),
			"standard:no-unused-imports":           enabled("error"),
			"standard:no-wildcard-imports":         enabled("error"),
			"standard:argument-list-wrapping":      enabled("error"),
			"standard:max-line-length":             enabled("error"),
		},
		EditorConfig: map[string]string{
			"max_line_length": "140",
			"indent_size":     "4",
			"indent_style":    "space",
		},
	}
}

// IntelliJPack returns the IntelliJ IDEA code style, which has no line
// length limit.
func IntelliJPack() Pack {
	return Pack{
		Name:        "intellij_idea",
		Description: "IntelliJ IDEA style: no line length limit, layout rules as warnings",
		Rules: map[string]config.RuleConfig{
			"standard:final-newline":              enabled("warning"),
			"standard:no-consecutive-blank-lines": enabled("warning"),
			"standard:no-trailing-spaces":         enabled("warning"),
			"standard:no-semi":                    enabled("warning"),
			"standard:no-unused-imports":          enabled("error"),
		},
		EditorConfig: map[string]string{
			"max_line_length": "off",
			"indent_size":     "4",
		},
	}
}

// AndroidPack returns the Android Studio code style.
func AndroidPack() Pack {
	return Pack{
		Name:        "android_studio",
		Description: "Android Studio style: 100 column limit, wildcard imports for synthetics only",
		Rules: map[string]config.RuleConfig{
			"standard:final-newline":          enabled("error"),
			"standard:no-trailing-spaces":     enabled("error"),
			"standard:no-unused-imports":      enabled("error"),
			"standard:no-wildcard-imports":    enabled("error"),
			"standard:argument-list-wrapping": enabled("error"),
			"standard:max-line-length":        enabled("warning"),
		},
		EditorConfig: map[string]string{
			"max_line_length": "100",
			"ij_kotlin_packages_to_use_import_on_demand": "kotlinx.android.synthetic.**",
		},
	}
}

// Packs returns all built-in code style packs.
func Packs() []Pack {
	return []Pack{
		OfficialPack(),
		IntelliJPack(),
		AndroidPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply layers the pack onto cfg. Settings already present in cfg win.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	for id, rc := range p.Rules {
		if _, ok := cfg.Rules[id]; !ok {
			cfg.Rules[id] = rc
		}
	}
	if cfg.EditorConfig == nil {
		cfg.EditorConfig = make(map[string]string)
	}
	for key, value := range p.EditorConfig {
		if _, ok := cfg.EditorConfig[key]; !ok {
			cfg.EditorConfig[key] = value
		}
	}
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}
