// Package cli provides the Cobra command structure for kotlint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kotlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root kotlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "kotlint",
		Short: "A Kotlin linter and formatter",
		Long: `kotlint checks Kotlin sources against a configurable set of style rules
and can rewrite them in place to fix what it finds.

Rules read their settings from .editorconfig files, and rule selection comes
from kotlint configuration files, KOTLINT_* environment variables and flags.
Three code styles are built in: ktlint_official, intellij_idea and
android_studio.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
