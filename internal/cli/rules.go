package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kotlint/internal/logging"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/lint/rules"
)

type rulesFlags struct {
	format       string
	experimental bool
	codeStyle    string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"`
	Enabled        bool     `json:"enabled"`
	Experimental   bool     `json:"experimental"`
	CanAutocorrect bool     `json:"autocorrect"`
	Properties     []string `json:"properties,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions, default
severity and whether they can autocorrect. With --code-style the enabled
column reflects that style's defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := collectRules(lint.DefaultRegistry, flags)
			if err != nil {
				return err
			}

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
			}

			logger := logging.NewInteractive()
			if len(infos) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules", "count", len(infos))
			for _, info := range infos {
				autocorrect := "-"
				if info.CanAutocorrect {
					autocorrect = "yes"
				}
				kv := []any{
					logging.FieldSeverity, info.Severity,
					logging.FieldAutocorrect, autocorrect,
					logging.FieldDescription, info.Description,
				}
				if !info.Enabled {
					kv = append(kv, "enabled", false)
				}
				if len(info.Properties) > 0 {
					kv = append(kv, logging.FieldProperty, strings.Join(info.Properties, ","))
				}
				logger.Info(info.ID, kv...)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.experimental, "experimental", false, "include experimental rules")
	cmd.Flags().StringVar(&flags.codeStyle, "code-style", "",
		"report enablement for a code style: ktlint_official, intellij_idea, android_studio")

	return cmd
}

// collectRules gathers rule metadata sorted by ID.
func collectRules(registry *lint.Registry, flags *rulesFlags) ([]ruleInfo, error) {
	var pack *rules.Pack
	if flags.codeStyle != "" {
		pack = rules.PackByName(flags.codeStyle)
		if pack == nil {
			return nil, fmt.Errorf("%w: unknown code style %q; valid styles: %s",
				ErrUsage, flags.codeStyle, strings.Join(rules.PackNames(), ", "))
		}
	}

	var infos []ruleInfo
	for _, rule := range registry.Rules() {
		if rule.Experimental() && !flags.experimental {
			continue
		}

		info := ruleInfo{
			ID:             rule.ID(),
			Description:    rule.Description(),
			Severity:       string(rule.DefaultSeverity()),
			Enabled:        rule.DefaultEnabled(),
			Experimental:   rule.Experimental(),
			CanAutocorrect: rule.CanAutocorrect(),
		}
		if pack != nil {
			if rc, ok := pack.Rules[rule.ID()]; ok {
				if rc.Enabled != nil {
					info.Enabled = *rc.Enabled
				}
				if rc.Severity != nil {
					info.Severity = *rc.Severity
				}
			}
		}
		for _, prop := range rule.Properties() {
			info.Properties = append(info.Properties, prop.Name)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	if infos == nil {
		infos = []ruleInfo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
