package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/kotlint/internal/configloader"
	"github.com/yaklabco/kotlint/internal/logging"
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/editorconfig"
	"github.com/yaklabco/kotlint/pkg/fsutil"
	"github.com/yaklabco/kotlint/pkg/langdetect"
	"github.com/yaklabco/kotlint/pkg/lint"
	_ "github.com/yaklabco/kotlint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/kotlint/pkg/parser/kotlin"
	"github.com/yaklabco/kotlint/pkg/reporter"
	"github.com/yaklabco/kotlint/pkg/runner"
)

// defaultStdinPath names stdin input in reports when --stdin-path is unset.
const defaultStdinPath = "<stdin>"

type lintFlags struct {
	reporter      string
	codeStyle     string
	jobs          int
	ignore        []string
	enable        []string
	disable       []string
	experimental  bool
	stdin         bool
	stdinPath     string
	relative      bool
	overrides     map[string]string
	strict        bool
	noContext     bool
	showCorrected bool
	dryRun        bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check Kotlin files for style violations",
		Long: `Check Kotlin files for style violations without changing them.

By default, lints all .kt and .kts files below the current directory.
Paths may be files, directories or glob patterns.`,
		Example: `  kotlint lint                          # Lint the current directory
  kotlint lint src/main/kotlin          # Lint one source root
  kotlint lint "**/*Test.kt"            # Lint files matching a glob
  kotlint lint --reporter checkstyle    # Checkstyle XML for CI
  kotlint lint --stdin < Main.kt        # Lint code piped on stdin
  kotlint lint --editorconfig-override max_line_length=100`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, false)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

func newFormatCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Fix style violations in Kotlin files",
		Long: `Fix style violations in Kotlin files in place.

Rules that can autocorrect rewrite the file until it stops changing.
Violations that cannot be fixed automatically are reported as in lint.
With --stdin the formatted code is written to stdout and the report to
stderr.`,
		Example: `  kotlint format                        # Format the current directory
  kotlint format --dry-run              # Show the changes as a diff
  kotlint format --stdin < Main.kt > Main.formatted.kt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, true)
		},
	}

	addLintFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show changes as a diff without writing files")
	cmd.Flags().BoolVar(&flags.showCorrected, "show-corrected", false, "also list violations that were fixed")

	return cmd
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.reporter, "reporter", "",
		"output format: plain, plain?group_by_file, json, checkstyle, summary, diff")
	cmd.Flags().StringVar(&flags.codeStyle, "code-style", "",
		"code style: ktlint_official, intellij_idea, android_studio")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().BoolVar(&flags.experimental, "experimental", false, "enable experimental rules")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read Kotlin code from stdin")
	cmd.Flags().StringVar(&flags.stdinPath, "stdin-path", "",
		"virtual file path for stdin input, used for .editorconfig matching and reports")
	cmd.Flags().BoolVar(&flags.relative, "relative", false, "print paths relative to the working directory")
	cmd.Flags().StringToStringVar(&flags.overrides, "editorconfig-override", nil,
		"override an .editorconfig property (key=value, repeatable)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"treat warnings as errors for the exit code and fail files on rule programming errors")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
}

// cliConfig builds the configuration layer contributed by flags. Only
// values the user provided are set, so lower layers show through.
func (f *lintFlags) cliConfig(format bool) *config.Config {
	return &config.Config{
		CodeStyle:    f.codeStyle,
		Ignore:       f.ignore,
		Experimental: f.experimental,
		EditorConfig: f.overrides,
		Format:       format,
		DryRun:       f.dryRun,
		Jobs:         f.jobs,
		EnableRules:  f.enable,
		DisableRules: f.disable,
		Relative:     f.relative,
		Strict:       f.strict,
	}
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, format bool) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.stdin && len(args) > 0 {
		return fmt.Errorf("%w: --stdin cannot be combined with paths", ErrUsage)
	}
	if flags.stdinPath != "" && !flags.stdin {
		return fmt.Errorf("%w: --stdin-path requires --stdin", ErrUsage)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    flags.cliConfig(format),
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldMode, modeName(format),
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldExperimental, cfg.Experimental,
		"code_style", cfg.CodeStyle,
	)

	repFormat, grouped, err := selectReporter(cmd, flags, cfg)
	if err != nil {
		return err
	}

	engine := lint.NewEngine(kotlin.New(), lint.DefaultRegistry, editorconfig.NewResolver(cfg.EditorConfig))
	pipeline, err := lint.NewPipeline(engine, cfg)
	if err != nil {
		return fmt.Errorf("resolve rules: %w", err)
	}
	lintRunner := runner.New(pipeline)

	reportOut := cmd.OutOrStdout()
	var result *runner.Result
	if flags.stdin {
		result, err = runStdin(ctx, cmd, lintRunner, flags, cfg)
		if format && !cfg.DryRun {
			reportOut = cmd.ErrOrStderr()
		}
	} else {
		runOpts := runner.Options{
			Paths:         args,
			WorkingDir:    workDir,
			Extensions:    langdetect.DefaultExtensions(),
			ExcludeGlobs:  cfg.Ignore,
			DetectScripts: true,
			Jobs:          cfg.Jobs,
			Config:        cfg,
		}
		logger.Debug("starting run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)
		result, err = lintRunner.Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("%s run failed: %w", modeName(format), err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldViolations, result.Stats.ViolationsTotal,
		logging.FieldFilesFormatted, result.Stats.FilesModified,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	reportDir := ""
	if cfg.Relative {
		reportDir = workDir
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        reportOut,
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        repFormat,
		Color:         colorMode,
		ShowContext:   !flags.noContext,
		ShowSummary:   true,
		ShowCorrected: flags.showCorrected,
		GroupByFile:   grouped,
		WorkingDir:    reportDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("%w: report results: %w", ErrIO, err)
	}

	code := ExitCodeFromResult(result, flags.strict)
	if code == ExitSuccess {
		return nil
	}
	if result.HasErrors() && !result.HasIssues() {
		return &exitError{code: code, err: ErrFilesFailed}
	}
	return &exitError{code: code, err: ErrLintIssuesFound}
}

// selectReporter picks the output format: the flag wins, then the
// configured reporter. A dry-run format with no explicit choice shows diffs.
func selectReporter(cmd *cobra.Command, flags *lintFlags, cfg *config.Config) (reporter.Format, bool, error) {
	if cmd.Flags().Changed("reporter") {
		format, grouped, err := reporter.ParseFormat(flags.reporter)
		if err != nil {
			return "", false, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return format, grouped, nil
	}

	format := reporter.FromConfig(cfg.Reporter)
	if cfg.Format && cfg.DryRun && format == reporter.FormatPlain {
		format = reporter.FormatDiff
	}
	return format, false, nil
}

// runStdin lints or formats the code piped on stdin. In format mode the
// formatted code, or the input unchanged, goes to stdout.
func runStdin(
	ctx context.Context,
	cmd *cobra.Command,
	lintRunner *runner.Runner,
	flags *lintFlags,
	cfg *config.Config,
) (*runner.Result, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logging.Default().Warn("reading Kotlin code from the terminal; end input with Ctrl-D")
	}

	content, err := fsutil.ReadStdin(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	path := flags.stdinPath
	if path == "" {
		path = defaultStdinPath
	}

	result, err := lintRunner.RunContent(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Format && !cfg.DryRun {
		output := content
		if pr := result.Files[0].Result; pr != nil && pr.Modified {
			output = pr.ModifiedContent
		}
		if err := writeAll(cmd.OutOrStdout(), output); err != nil {
			return nil, fmt.Errorf("%w: write formatted code: %w", ErrIO, err)
		}
	}

	return result, nil
}

func writeAll(w io.Writer, content []byte) error {
	_, err := w.Write(content)
	return err
}

func modeName(format bool) string {
	if format {
		return lint.ModeFormat.String()
	}
	return lint.ModeLint.String()
}
