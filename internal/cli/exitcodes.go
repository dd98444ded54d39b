package cli

import (
	"errors"

	"github.com/yaklabco/kotlint/internal/configloader"
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/runner"
)

// Exit codes for kotlint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when unresolved violations remain.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrFilesFailed is returned when some files could not be parsed or read.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrUsage marks invalid flag combinations and values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Files that failed to parse count as errors.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.ViolationsBySeverity[string(config.SeverityError)]
	warnings := result.Stats.ViolationsBySeverity[string(config.SeverityWarning)]

	if errs > 0 || result.HasErrors() {
		return ExitLintErrors
	}

	if strict && warnings > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command onto an exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound), errors.Is(err, ErrFilesFailed):
		var coded *exitError
		if errors.As(err, &coded) {
			return coded.code
		}
		return ExitLintErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validation), errors.Is(err, configloader.ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ErrIO marks failures reading input or writing output.
var ErrIO = errors.New("i/o error")

// exitError carries the exit code a lint run decided on.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }
