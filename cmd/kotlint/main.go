// Package main is the entry point for the kotlint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/kotlint/internal/cli"
	"github.com/yaklabco/kotlint/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Lint findings were already reported; they only set the exit code.
		if !errors.Is(err, cli.ErrLintIssuesFound) && !errors.Is(err, cli.ErrFilesFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return 0
}
