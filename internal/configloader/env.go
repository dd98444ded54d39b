package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
)

// envVarPrefix is the prefix for all kotlint environment variables.
const envVarPrefix = "KOTLINT_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envVar binds one environment variable to the config field it sets.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"CODE_STYLE", "Code style: ktlint_official, intellij_idea or android_studio",
		func(cfg *config.Config, v string) error { cfg.CodeStyle = v; return nil }},
	{"REPORTER", "Reporter: plain, json, checkstyle or summary",
		func(cfg *config.Config, v string) error { cfg.Reporter = config.OutputFormat(v); return nil }},
	{"EXPERIMENTAL", "Run experimental rules: true or false",
		boolField(func(cfg *config.Config, b bool) { cfg.Experimental = b })},
	{"RELATIVE", "Print paths relative to the working directory: true or false",
		boolField(func(cfg *config.Config, b bool) { cfg.Relative = b })},
	{"JOBS", "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = n
			return nil
		}},
	{"IGNORE", "Comma-separated glob patterns to skip",
		func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil }},
	{"ENABLE", "Comma-separated rule ids to enable",
		func(cfg *config.Config, v string) error { cfg.EnableRules = splitList(v); return nil }},
	{"DISABLE", "Comma-separated rule ids to disable",
		func(cfg *config.Config, v string) error { cfg.DisableRules = splitList(v); return nil }},
}

func boolField(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies KOTLINT_* overrides to cfg. A nil lookup reads the
// process environment. Empty values are ignored.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, ev := range envVars {
		value, ok := lookup(envVarPrefix + ev.suffix)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := ev.apply(cfg, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, ev.suffix, err)
		}
	}
	return nil
}

// splitList parses a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{envVarPrefix + ev.suffix, ev.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return out
}
