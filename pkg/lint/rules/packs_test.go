package rules

import (
	"testing"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
)

func TestPacksReferenceRegisteredRules(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	for _, pack := range Packs() {
		for ruleID, cfg := range pack.Rules {
			if _, ok := registry.Get(ruleID); !ok {
				t.Errorf("pack %q references unknown rule %q", pack.Name, ruleID)
			}
			if cfg.Severity != nil {
				if !config.Severity(*cfg.Severity).IsValid() {
					t.Errorf("pack %q rule %q has invalid severity %q", pack.Name, ruleID, *cfg.Severity)
				}
			}
		}
	}
}

func TestPackByName(t *testing.T) {
	for _, name := range PackNames() {
		pack := PackByName(name)
		if pack == nil {
			t.Fatalf("PackByName(%q) returned nil", name)
		}
		if pack.Name != name {
			t.Errorf("PackByName(%q).Name = %q", name, pack.Name)
		}
		if pack.Description == "" {
			t.Errorf("pack %q has no description", name)
		}
	}

	if PackByName("nonexistent") != nil {
		t.Error("PackByName(nonexistent) should return nil")
	}
}

func TestPackNames(t *testing.T) {
	names := PackNames()
	want := []string{"ktlint_official", "intellij_idea", "android_studio"}
	if len(names) != len(want) {
		t.Fatalf("PackNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("PackNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOfficialPack(t *testing.T) {
	pack := OfficialPack()

	if got := pack.EditorConfig["max_line_length"]; got != "140" {
		t.Errorf("max_line_length = %q, want 140", got)
	}
	for ruleID, cfg := range pack.Rules {
		if cfg.Severity == nil || *cfg.Severity != "error" {
			t.Errorf("official pack rule %q is not an error", ruleID)
		}
	}
	if _, ok := pack.Rules["standard:indent"]; ok {
		t.Error("official pack should not enable the experimental indent rule")
	}
}

func TestIntelliJPack(t *testing.T) {
	pack := IntelliJPack()

	if got := pack.EditorConfig["max_line_length"]; got != "off" {
		t.Errorf("max_line_length = %q, want off", got)
	}
	if _, ok := pack.Rules["standard:max-line-length"]; ok {
		t.Error("intellij pack should not configure max-line-length")
	}
}

func TestAndroidPack(t *testing.T) {
	pack := AndroidPack()

	if got := pack.EditorConfig["max_line_length"]; got != "100" {
		t.Errorf("max_line_length = %q, want 100", got)
	}
	if got := pack.EditorConfig[PackagesToUseImportOnDemandProperty.Name]; got != "kotlinx.android.synthetic.**" {
		t.Errorf("%s = %q", PackagesToUseImportOnDemandProperty.Name, got)
	}
}

func TestPackApply(t *testing.T) {
	disabled := false
	cfg := config.NewConfig()
	cfg.Rules["standard:no-semi"] = config.RuleConfig{Enabled: &disabled}
	cfg.EditorConfig["max_line_length"] = "80"

	OfficialPack().Apply(cfg)

	if rc := cfg.Rules["standard:no-semi"]; rc.Enabled == nil || *rc.Enabled {
		t.Error("existing rule settings must win over the pack")
	}
	if rc, ok := cfg.Rules["standard:final-newline"]; !ok || rc.Enabled == nil || !*rc.Enabled {
		t.Error("pack rules should be added")
	}
	if got := cfg.EditorConfig["max_line_length"]; got != "80" {
		t.Errorf("max_line_length = %q, want the existing 80", got)
	}
	if got := cfg.EditorConfig["indent_style"]; got != "space" {
		t.Errorf("indent_style = %q, want space from the pack", got)
	}
}

func TestPackApplyNilMaps(t *testing.T) {
	cfg := &config.Config{}
	AndroidPack().Apply(cfg)

	if len(cfg.Rules) != len(AndroidPack().Rules) {
		t.Errorf("got %d rules, want %d", len(cfg.Rules), len(AndroidPack().Rules))
	}
	if cfg.EditorConfig["max_line_length"] != "100" {
		t.Error("editorconfig overrides should be applied")
	}
}
