package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kotlint/internal/logging"
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/fsutil"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the file init writes when --output is not given.
const defaultConfigFile = ".kotlint.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	full      bool
	codeStyle string
	output    string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a kotlint configuration file",
		Long: `Create a new .kotlint.yml configuration file in the current directory.
The file can be customized to enable or disable rules, change severities
and override .editorconfig properties.`,
		Example: `  kotlint init                            # Create a minimal .kotlint.yml
  kotlint init --full                     # Document every rule
  kotlint init --code-style android_studio
  kotlint init --output config/kotlint.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a template documenting every rule")
	cmd.Flags().StringVar(&flags.codeStyle, "code-style", "",
		"code style to select: ktlint_official, intellij_idea, android_studio")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .kotlint.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.codeStyle != "" && rules.PackByName(flags.codeStyle) == nil {
		return fmt.Errorf("%w: unknown code style %q; valid styles: %s",
			ErrUsage, flags.codeStyle, strings.Join(rules.PackNames(), ", "))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:      flags.full,
		Rules:     templateRules(lint.DefaultRegistry),
		CodeStyle: flags.codeStyle,
	})

	ctx := cmd.Context()
	if flags.force {
		err = fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions)
	} else {
		err = fsutil.WriteNew(ctx, absPath, content)
	}
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, outputPath, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("the template documents every rule and its properties")
	}
	logger.Info("run 'kotlint rules' to see all available rules")

	return nil
}

// templateRules describes the registered rules for a full template.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	all := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(all))
	for _, rule := range all {
		infos = append(infos, config.RuleInfo{
			ID:             rule.ID(),
			Description:    rule.Description(),
			Enabled:        rule.DefaultEnabled(),
			Experimental:   rule.Experimental(),
			CanAutocorrect: rule.CanAutocorrect(),
			Properties:     rule.Properties(),
		})
	}
	return infos
}
